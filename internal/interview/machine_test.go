package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fadilmartias/hireflow/internal/model"
	"gorm.io/datatypes"
)

type fakePolicies struct {
	text string
	err  error
}

func (f *fakePolicies) PolicyText(ctx context.Context, app *model.Application) (string, error) {
	return f.text, f.err
}

type fakeAnswerer struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAnswerer) AnswerFromPolicy(ctx context.Context, policyText, question string) (string, error) {
	f.asked = append(f.asked, question)
	return f.answer, f.err
}

func newTestMachine() *Machine {
	return NewMachine(
		&fakePolicies{text: "Employees get 20 days of paid leave."},
		&fakeAnswerer{answer: "You get 20 days of paid leave per year."},
	)
}

func newApp(questions ...string) *model.Application {
	return &model.Application{
		Status:             model.StatusApplied,
		InterviewStep:      model.StepName,
		GeneratedQuestions: datatypes.JSONSlice[string](questions),
	}
}

func TestHappyPathScenario(t *testing.T) {
	m := newTestMachine()
	app := newApp("What is a goroutine?", "Explain SQL injection.", "What does Docker solve?")
	ctx := context.Background()

	steps := []struct {
		message      string
		wantStep     model.Step
		wantInReply  string
		wantComplete bool
	}{
		{"Jane Doe", model.StepCollege, "Jane Doe", false},
		{"MIT", model.StepExperienceCheck, "fresher", false},
		{"none", model.StepCGPA, "CGPA", false},
		{"3.8", model.StepSkills, "skills", false},
		{"Python, SQL, Docker", model.StepTechnical1, "What is a goroutine?", false},
		{"A lightweight thread.", model.StepTechnical2, "Explain SQL injection.", false},
		{"Unsanitized query input.", model.StepTechnical3, "What does Docker solve?", false},
		{"Reproducible environments.", model.StepCompanyQnA, "questions about the company", false},
		{"no", model.StepCompleted, "Jane Doe", true},
	}

	visited := []model.Step{app.InterviewStep}
	for i, tc := range steps {
		historyBefore := len(app.ChatHistory)
		turn, err := m.ProcessTurn(ctx, app, tc.message)
		if err != nil {
			t.Fatalf("turn %d (%q): unexpected error: %v", i, tc.message, err)
		}
		if turn.Step != tc.wantStep {
			t.Fatalf("turn %d (%q): step = %q, want %q", i, tc.message, turn.Step, tc.wantStep)
		}
		if !strings.Contains(turn.Reply, tc.wantInReply) {
			t.Fatalf("turn %d (%q): reply %q does not contain %q", i, tc.message, turn.Reply, tc.wantInReply)
		}
		if turn.Completed != tc.wantComplete {
			t.Fatalf("turn %d (%q): completed = %v, want %v", i, tc.message, turn.Completed, tc.wantComplete)
		}
		if got := len(app.ChatHistory) - historyBefore; got != 2 {
			t.Fatalf("turn %d (%q): history grew by %d entries, want 2", i, tc.message, got)
		}
		visited = append(visited, turn.Step)
	}

	wantOrder := []model.Step{
		model.StepName, model.StepCollege, model.StepExperienceCheck,
		model.StepCGPA, model.StepSkills, model.StepTechnical1,
		model.StepTechnical2, model.StepTechnical3, model.StepCompanyQnA,
		model.StepCompleted,
	}
	for i, step := range wantOrder {
		if visited[i] != step {
			t.Fatalf("visited[%d] = %q, want %q (full: %v)", i, visited[i], step, visited)
		}
	}

	if app.Status != model.StatusReview {
		t.Errorf("status = %q, want %q", app.Status, model.StatusReview)
	}

	info := app.CandidateInfo.Data()
	if info.Name != "Jane Doe" || info.College != "MIT" || !info.IsFresher || info.CGPA != "3.8" {
		t.Errorf("candidate info not accumulated: %+v", info)
	}

	// Technical answers land as answered-question records.
	roles := map[string]bool{}
	for _, entry := range app.ChatHistory {
		roles[entry.Role] = true
	}
	for _, want := range []string{model.RoleAssistantQ1, model.RoleAssistantQ2, model.RoleAssistantQ3} {
		if !roles[want] {
			t.Errorf("history is missing a %s record", want)
		}
	}
}

func TestExperienceCheckBranch(t *testing.T) {
	tests := []struct {
		message  string
		wantStep model.Step
	}{
		{"none", model.StepCGPA},
		{"Fresher", model.StepCGPA},
		{"NO", model.StepCGPA},
		{"na", model.StepCGPA},
		{"  fresher  ", model.StepCGPA},
		{"Acme Corp", model.StepRoleDetails},
		{"nah", model.StepRoleDetails},
		{"Google", model.StepRoleDetails},
	}

	for _, tc := range tests {
		t.Run(tc.message, func(t *testing.T) {
			m := newTestMachine()
			app := newApp()
			app.InterviewStep = model.StepExperienceCheck
			app.Status = model.StatusInterviewing

			turn, err := m.ProcessTurn(context.Background(), app, tc.message)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if turn.Step != tc.wantStep {
				t.Fatalf("step = %q, want %q", turn.Step, tc.wantStep)
			}

			info := app.CandidateInfo.Data()
			if tc.wantStep == model.StepCGPA && !info.IsFresher {
				t.Error("is_fresher not set on fresher branch")
			}
			if tc.wantStep == model.StepRoleDetails && info.PreviousInstitution == "" {
				t.Error("previous_institution not stored on experienced branch")
			}
		})
	}
}

func TestFallbackQuestionsWhenGenerationFellShort(t *testing.T) {
	m := newTestMachine()
	app := newApp() // no generated questions at all
	app.InterviewStep = model.StepSkills
	app.Status = model.StatusInterviewing

	ctx := context.Background()
	for _, message := range []string{"Go, SQL", "answer one", "answer two", "answer three"} {
		turn, err := m.ProcessTurn(ctx, app, message)
		if err != nil {
			t.Fatalf("turn %q: unexpected error: %v", message, err)
		}
		if strings.TrimSpace(turn.Reply) == "" {
			t.Fatalf("turn %q: empty reply", message)
		}
	}
	if app.InterviewStep != model.StepCompanyQnA {
		t.Fatalf("step = %q, want %q", app.InterviewStep, model.StepCompanyQnA)
	}

	for _, entry := range app.ChatHistory {
		switch entry.Role {
		case model.RoleAssistantQ1, model.RoleAssistantQ2, model.RoleAssistantQ3:
			if entry.Question != FallbackQuestion {
				t.Errorf("%s question = %q, want fallback", entry.Role, entry.Question)
			}
		}
	}
}

func TestFirstTurnFlipsStatusToInterviewing(t *testing.T) {
	m := newTestMachine()
	app := newApp("q1", "q2", "q3")

	if _, err := m.ProcessTurn(context.Background(), app, "Jane"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != model.StatusInterviewing {
		t.Fatalf("status = %q, want %q", app.Status, model.StatusInterviewing)
	}
}

func TestCompanyQnAAnswersAndLoops(t *testing.T) {
	answerer := &fakeAnswerer{answer: "Remote work is allowed two days a week."}
	m := NewMachine(&fakePolicies{text: "policy text"}, answerer)
	app := newApp()
	app.InterviewStep = model.StepCompanyQnA
	app.Status = model.StatusInterviewing

	turn, err := m.ProcessTurn(context.Background(), app, "What is the remote work policy?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turn.Step != model.StepCompanyQnA {
		t.Fatalf("step = %q, want self-loop on %q", turn.Step, model.StepCompanyQnA)
	}
	if turn.Completed {
		t.Error("completed = true on a looping Q&A turn")
	}
	if !strings.Contains(turn.Reply, answerer.answer) {
		t.Errorf("reply %q does not contain the policy answer", turn.Reply)
	}
	if !strings.Contains(turn.Reply, "Say 'no' to finish") {
		t.Errorf("reply %q does not repeat the exit hint", turn.Reply)
	}
	if len(answerer.asked) != 1 || answerer.asked[0] != "What is the remote work policy?" {
		t.Errorf("answerer asked = %v", answerer.asked)
	}
	if app.Status != model.StatusInterviewing {
		t.Errorf("status changed to %q on a looping turn", app.Status)
	}
}

func TestCompanyQnADegradesOnFailure(t *testing.T) {
	tests := []struct {
		name     string
		policies PolicySource
		answerer PolicyAnswerer
	}{
		{
			name:     "policy retrieval fails",
			policies: &fakePolicies{err: errors.New("file missing")},
			answerer: &fakeAnswerer{answer: "unused"},
		},
		{
			name:     "answering collaborator fails",
			policies: &fakePolicies{text: "policy text"},
			answerer: &fakeAnswerer{err: errors.New("inference timeout")},
		},
		{
			name:     "answering collaborator returns nothing",
			policies: &fakePolicies{text: "policy text"},
			answerer: &fakeAnswerer{answer: "   "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine(tc.policies, tc.answerer)
			app := newApp()
			app.InterviewStep = model.StepCompanyQnA
			app.Status = model.StatusInterviewing

			turn, err := m.ProcessTurn(context.Background(), app, "What about leave?")
			if err != nil {
				t.Fatalf("collaborator failure must not surface: %v", err)
			}
			if turn.Step != model.StepCompanyQnA {
				t.Fatalf("step = %q, want %q", turn.Step, model.StepCompanyQnA)
			}
			if !strings.Contains(turn.Reply, "trouble accessing") {
				t.Errorf("reply = %q, want the trouble-accessing fallback", turn.Reply)
			}

			// The candidate can still exit normally afterwards.
			turn, err = m.ProcessTurn(context.Background(), app, "no")
			if err != nil {
				t.Fatalf("exit after failure: %v", err)
			}
			if !turn.Completed {
				t.Error("exit after failure did not complete the interview")
			}
		})
	}
}

func TestCompletedStepKeepsReplying(t *testing.T) {
	m := newTestMachine()
	app := newApp()
	app.InterviewStep = model.StepCompleted
	app.Status = model.StatusReview

	for i := 0; i < 2; i++ {
		historyBefore := len(app.ChatHistory)
		turn, err := m.ProcessTurn(context.Background(), app, "hello again")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if turn.Step != model.StepCompleted || !turn.Completed {
			t.Fatalf("turn = %+v, want completed", turn)
		}
		if !strings.Contains(turn.Reply, "already been completed") {
			t.Errorf("reply = %q", turn.Reply)
		}
		if len(app.ChatHistory) != historyBefore+2 {
			t.Error("already-completed replies must still append a history pair")
		}
	}
}

func TestRejectedApplicationRefusesTurns(t *testing.T) {
	m := newTestMachine()
	app := newApp()
	app.InterviewStep = model.StepSkills
	app.Status = model.StatusRejected

	_, err := m.ProcessTurn(context.Background(), app, "Go, SQL")
	if !errors.Is(err, ErrDisqualified) {
		t.Fatalf("err = %v, want ErrDisqualified", err)
	}
	if app.InterviewStep != model.StepSkills {
		t.Errorf("interview_step changed on a refused turn: %q", app.InterviewStep)
	}
	if len(app.ChatHistory) != 0 {
		t.Errorf("history mutated on a refused turn: %d entries", len(app.ChatHistory))
	}
}

func TestQnAExitPhrases(t *testing.T) {
	for _, phrase := range []string{"no", "No Questions", "DONE", "finish", "none", "na", "  no  "} {
		t.Run(phrase, func(t *testing.T) {
			m := newTestMachine()
			app := newApp()
			app.InterviewStep = model.StepCompanyQnA
			app.Status = model.StatusInterviewing

			turn, err := m.ProcessTurn(context.Background(), app, phrase)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !turn.Completed || turn.Step != model.StepCompleted {
				t.Fatalf("phrase %q did not complete the interview: %+v", phrase, turn)
			}
			if app.Status != model.StatusReview {
				t.Errorf("status = %q, want %q", app.Status, model.StatusReview)
			}
		})
	}
}
