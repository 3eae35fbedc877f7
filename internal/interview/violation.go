package interview

import (
	"fmt"
	"time"

	"github.com/fadilmartias/hireflow/internal/model"
)

// ViolationLimit is the strike count at which an application is rejected.
const ViolationLimit = 3

// LogViolation records one proctoring signal on the application and enforces
// the strike limit. The tally is always recomputed from the history itself
// so the log stays the single source of truth.
//
// If the most recent history entry is already an alert the signal is treated
// as a client-side duplicate: nothing is appended and the existing tally is
// returned. This does not touch InterviewStep; stopping chat turns for a
// rejected application is the chat path's job.
func LogViolation(app *model.Application, now time.Time) (count int, terminated bool) {
	if n := len(app.ChatHistory); n > 0 && app.ChatHistory[n-1].Role == model.RoleSystemAlert {
		count = ViolationCount(app.ChatHistory)
		return count, app.Status == model.StatusRejected || count >= ViolationLimit
	}

	app.ChatHistory = append(app.ChatHistory, model.ChatEntry{
		Role:    model.RoleSystemAlert,
		Content: fmt.Sprintf("Proctoring alert: possible malpractice detected (tab switch or focus loss) at %s.", now.Format(time.RFC1123)),
	})

	count = ViolationCount(app.ChatHistory)
	if count >= ViolationLimit {
		app.Status = model.StatusRejected
		app.ChatHistory = append(app.ChatHistory, model.ChatEntry{
			Role:    model.RoleSystemAlert,
			Content: "Disqualified: the proctoring violation limit was reached. This application has been rejected.",
		})
		terminated = true
	}
	return count, terminated
}

// ViolationCount scans the full history for alert entries. O(n) per call,
// but it cannot drift from the log the way a cached counter could.
func ViolationCount(history []model.ChatEntry) int {
	count := 0
	for _, entry := range history {
		if entry.Role == model.RoleSystemAlert {
			count++
		}
	}
	return count
}
