package interview

import (
	"testing"
	"time"

	"github.com/fadilmartias/hireflow/internal/model"
)

func TestThreeStrikeTermination(t *testing.T) {
	app := newApp()
	app.InterviewStep = model.StepTechnical2
	app.Status = model.StatusInterviewing
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	for strike := 1; strike <= ViolationLimit; strike++ {
		// A chat-like entry between strikes so the duplicate guard does
		// not swallow them.
		if strike > 1 {
			app.ChatHistory = append(app.ChatHistory, model.ChatEntry{Role: model.RoleUser, Content: "still here"})
		}

		count, terminated := LogViolation(app, now)
		if count != strike {
			t.Fatalf("strike %d: count = %d", strike, count)
		}
		if wantTerminated := strike >= ViolationLimit; terminated != wantTerminated {
			t.Fatalf("strike %d: terminated = %v, want %v", strike, terminated, wantTerminated)
		}
	}

	if app.Status != model.StatusRejected {
		t.Errorf("status = %q, want %q", app.Status, model.StatusRejected)
	}
	if app.InterviewStep != model.StepTechnical2 {
		t.Errorf("interview_step = %q; the tracker must not touch it", app.InterviewStep)
	}

	// The terminal announcement is itself an alert entry in the audit log.
	if got := ViolationCount(app.ChatHistory); got != ViolationLimit+1 {
		t.Errorf("ViolationCount = %d, want %d (strikes plus disqualification notice)", got, ViolationLimit+1)
	}
}

func TestDuplicateSignalIsIdempotent(t *testing.T) {
	app := newApp()
	app.Status = model.StatusInterviewing
	now := time.Now()

	count1, terminated1 := LogViolation(app, now)
	historyAfterFirst := len(app.ChatHistory)

	count2, terminated2 := LogViolation(app, now)
	if count2 != count1 || terminated2 != terminated1 {
		t.Fatalf("duplicate signal changed the result: (%d,%v) then (%d,%v)",
			count1, terminated1, count2, terminated2)
	}
	if len(app.ChatHistory) != historyAfterFirst {
		t.Fatalf("duplicate signal appended to history: %d -> %d entries",
			historyAfterFirst, len(app.ChatHistory))
	}
}

func TestViolationsSeparatedByTurnsBothCount(t *testing.T) {
	app := newApp()
	app.Status = model.StatusInterviewing
	now := time.Now()

	LogViolation(app, now)
	app.ChatHistory = append(app.ChatHistory,
		model.ChatEntry{Role: model.RoleUser, Content: "Jane"},
		model.ChatEntry{Role: model.RoleAssistant, Content: "Which college did you attend?"},
	)
	count, terminated := LogViolation(app, now)

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if terminated {
		t.Error("terminated after 2 strikes")
	}
	if app.Status != model.StatusInterviewing {
		t.Errorf("status = %q, want Interviewing", app.Status)
	}
}

func TestRepeatCallsAfterTerminationStayTerminated(t *testing.T) {
	app := newApp()
	app.Status = model.StatusInterviewing
	now := time.Now()

	for strike := 0; strike < ViolationLimit; strike++ {
		if strike > 0 {
			app.ChatHistory = append(app.ChatHistory, model.ChatEntry{Role: model.RoleUser, Content: "msg"})
		}
		LogViolation(app, now)
	}
	historyAfterTermination := len(app.ChatHistory)

	_, terminated := LogViolation(app, now)
	if !terminated {
		t.Error("terminated flag dropped after the one-way transition fired")
	}
	if len(app.ChatHistory) != historyAfterTermination {
		t.Error("post-termination duplicate appended to history")
	}
}
