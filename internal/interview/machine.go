package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/hireflow/internal/model"
	"gorm.io/datatypes"
)

// PolicyAnswerer answers a candidate question strictly from the supplied
// policy text. Implementations must not invent answers that are not in the
// text.
type PolicyAnswerer interface {
	AnswerFromPolicy(ctx context.Context, policyText, question string) (string, error)
}

// PolicySource resolves the policy document text for an application's job,
// already truncated to the prompt budget.
type PolicySource interface {
	PolicyText(ctx context.Context, app *model.Application) (string, error)
}

// ErrDisqualified is returned when a chat turn arrives for an application
// that was rejected by the proctoring tracker.
var ErrDisqualified = errors.New("application has been rejected for proctoring violations")

// FallbackQuestion substitutes for any missing generated question so an
// upstream generation shortfall never breaks the interview.
const FallbackQuestion = "Tell me about a challenging technical problem you solved recently and how you approached it."

const (
	skillsPrompt  = "Thanks! What are your top 3 technical skills?"
	qnaInvite     = "That wraps up the technical round! Do you have any questions about the company or its policies? Ask away, or say 'no' to finish."
	qnaFollowUp   = "\n\nAnything else you would like to know? Say 'no' to finish."
	qnaTrouble    = "I'm having trouble accessing the company policies right now. Please try again in a moment, or say 'no' to finish."
	completedNote = "This interview has already been completed. Our HR team will reach out with next steps."
)

var qnaExitPhrases = map[string]bool{
	"no":           true,
	"no questions": true,
	"done":         true,
	"finish":       true,
	"none":         true,
	"na":           true,
}

var fresherPhrases = map[string]bool{
	"none":    true,
	"fresher": true,
	"no":      true,
	"na":      true,
}

// Machine drives one application's conversational interview. It has no
// state of its own; everything lives on the Application row, which the
// caller persists after each turn.
type Machine struct {
	policies PolicySource
	answerer PolicyAnswerer
}

func NewMachine(policies PolicySource, answerer PolicyAnswerer) *Machine {
	return &Machine{policies: policies, answerer: answerer}
}

// Turn is the outcome of one processed message.
type Turn struct {
	Reply     string
	Step      model.Step
	Completed bool
}

// ProcessTurn advances the state machine by exactly one transition. It
// mutates the application in memory (step, candidate info, history, status)
// and leaves persistence to the caller. Apart from ErrDisqualified, it never
// fails: collaborator errors degrade to an in-character reply.
func (m *Machine) ProcessTurn(ctx context.Context, app *model.Application, message string) (Turn, error) {
	if app.Status == model.StatusRejected {
		return Turn{}, ErrDisqualified
	}
	// First turn flips the application into Interviewing regardless of
	// which step fires.
	if app.Status == model.StatusApplied {
		app.Status = model.StatusInterviewing
	}

	trimmed := strings.TrimSpace(message)
	info := app.CandidateInfo.Data()

	var reply string
	next := app.InterviewStep
	record := model.ChatEntry{Role: model.RoleAssistant}

	switch app.InterviewStep {
	case model.StepName:
		info.Name = trimmed
		reply = fmt.Sprintf("Nice to meet you, %s! Which college or university did you attend?", trimmed)
		next = model.StepCollege

	case model.StepCollege:
		info.College = trimmed
		reply = "Where did you work before this, if anywhere? If you have no prior experience, just say 'fresher'."
		next = model.StepExperienceCheck

	case model.StepExperienceCheck:
		if fresherPhrases[strings.ToLower(trimmed)] {
			info.IsFresher = true
			reply = "Got it. What is your CGPA?"
			next = model.StepCGPA
		} else {
			info.IsFresher = false
			info.PreviousInstitution = trimmed
			reply = fmt.Sprintf("What was your role at %s, and what did you work on there?", trimmed)
			next = model.StepRoleDetails
		}

	case model.StepCGPA:
		info.CGPA = trimmed
		reply = skillsPrompt
		next = model.StepSkills

	case model.StepRoleDetails:
		info.RoleDetails = trimmed
		reply = skillsPrompt
		next = model.StepSkills

	case model.StepSkills:
		info.Skills = trimmed
		app.CurrentQuestionIndex = 0
		reply = "Great, thanks for sharing! Let's move on to a few technical questions.\n\nQuestion 1: " + questionAt(app, 0)
		next = model.StepTechnical1

	case model.StepTechnical1:
		record = model.ChatEntry{Role: model.RoleAssistantQ1, Question: questionAt(app, 0), Answer: trimmed}
		app.CurrentQuestionIndex = 1
		reply = "Question 2: " + questionAt(app, 1)
		next = model.StepTechnical2

	case model.StepTechnical2:
		record = model.ChatEntry{Role: model.RoleAssistantQ2, Question: questionAt(app, 1), Answer: trimmed}
		app.CurrentQuestionIndex = 2
		reply = "Question 3: " + questionAt(app, 2)
		next = model.StepTechnical3

	case model.StepTechnical3:
		record = model.ChatEntry{Role: model.RoleAssistantQ3, Question: questionAt(app, 2), Answer: trimmed}
		reply = qnaInvite
		next = model.StepCompanyQnA

	case model.StepCompanyQnA:
		if qnaExitPhrases[strings.ToLower(trimmed)] {
			reply = closingReply(info.Name)
			app.Status = model.StatusReview
			next = model.StepCompleted
		} else {
			reply = m.answerPolicyQuestion(ctx, app, trimmed)
			next = model.StepCompanyQnA
		}

	case model.StepCompleted:
		reply = completedNote
		next = model.StepCompleted

	default:
		return Turn{}, fmt.Errorf("unknown interview step %q", app.InterviewStep)
	}

	if record.Role == model.RoleAssistant {
		record.Content = reply
	}

	app.CandidateInfo = datatypes.NewJSONType(info)
	app.InterviewStep = next
	app.ChatHistory = append(app.ChatHistory,
		model.ChatEntry{Role: model.RoleUser, Content: message},
		record,
	)

	return Turn{Reply: reply, Step: next, Completed: next == model.StepCompleted}, nil
}

// answerPolicyQuestion runs the retrieval-grounded Q&A sub-step. Any failure
// along the way collapses to a retry-friendly reply so the conversation is
// never broken by a collaborator outage.
func (m *Machine) answerPolicyQuestion(ctx context.Context, app *model.Application, question string) string {
	policyText, err := m.policies.PolicyText(ctx, app)
	if err != nil {
		return qnaTrouble
	}
	answer, err := m.answerer.AnswerFromPolicy(ctx, policyText, question)
	if err != nil || strings.TrimSpace(answer) == "" {
		return qnaTrouble
	}
	return answer + qnaFollowUp
}

func closingReply(name string) string {
	if name == "" {
		return "Thank you for your time! Your interview is complete. Our HR team will review your application and get back to you soon."
	}
	return fmt.Sprintf("Thank you for your time, %s! Your interview is complete. Our HR team will review your application and get back to you soon.", name)
}

func questionAt(app *model.Application, idx int) string {
	if idx < len(app.GeneratedQuestions) && strings.TrimSpace(app.GeneratedQuestions[idx]) != "" {
		return app.GeneratedQuestions[idx]
	}
	return FallbackQuestion
}

// Greeting is the opening reply returned by interview start, before any
// chat turn has fired.
func Greeting(name, jobTitle string) string {
	return fmt.Sprintf("Hello %s! Thanks for applying for the %s role. I'll walk you through a short screening interview. First, what is your full name?", name, jobTitle)
}
