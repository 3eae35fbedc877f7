package usecase

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/hireflow/internal/model"
)

// FormatTranscript renders chat history as plain text for the summarization
// prompt. Proctoring alerts stay in so the reviewer sees them.
func FormatTranscript(history []model.ChatEntry) string {
	var b strings.Builder
	for _, entry := range history {
		switch entry.Role {
		case model.RoleUser:
			fmt.Fprintf(&b, "Candidate: %s\n", entry.Content)
		case model.RoleAssistant:
			fmt.Fprintf(&b, "Interviewer: %s\n", entry.Content)
		case model.RoleAssistantQ1, model.RoleAssistantQ2, model.RoleAssistantQ3:
			fmt.Fprintf(&b, "Interviewer (technical): %s\nCandidate: %s\n", entry.Question, entry.Answer)
		case model.RoleSystemAlert:
			fmt.Fprintf(&b, "[Proctoring] %s\n", entry.Content)
		}
	}
	return strings.TrimSpace(b.String())
}
