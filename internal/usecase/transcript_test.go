package usecase

import (
	"strings"
	"testing"

	"github.com/fadilmartias/hireflow/internal/model"
)

func TestFormatTranscript(t *testing.T) {
	history := []model.ChatEntry{
		{Role: model.RoleUser, Content: "Jane Doe"},
		{Role: model.RoleAssistant, Content: "Which college did you attend?"},
		{Role: model.RoleAssistantQ1, Question: "What is a goroutine?", Answer: "A lightweight thread."},
		{Role: model.RoleSystemAlert, Content: "Proctoring alert: tab switch."},
	}

	got := FormatTranscript(history)

	for _, want := range []string{
		"Candidate: Jane Doe",
		"Interviewer: Which college did you attend?",
		"Interviewer (technical): What is a goroutine?",
		"Candidate: A lightweight thread.",
		"[Proctoring] Proctoring alert: tab switch.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
}

func TestFormatTranscriptEmpty(t *testing.T) {
	if got := FormatTranscript(nil); got != "" {
		t.Errorf("FormatTranscript(nil) = %q, want empty", got)
	}
}
