package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/fadilmartias/hireflow/internal/interview"
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/fadilmartias/hireflow/internal/repository"
	"github.com/fadilmartias/hireflow/internal/service"
	"github.com/fadilmartias/hireflow/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	ErrNotOwner               = errors.New("application does not belong to caller")
	ErrNotAResume             = errors.New("uploaded document does not look like a resume")
	ErrInsufficientExperience = errors.New("job requires more experience than reported")
	ErrAlreadyApplied         = errors.New("an application for this job already exists")
)

const policyUnavailable = "Company policy document is not available."

type InterviewUsecase struct {
	apps              *repository.ApplicationRepository
	jobs              *repository.JobRepository
	users             *repository.UserRepository
	ai                service.AIServiceInterface
	machine           *interview.Machine
	budget            service.PromptBudget
	defaultPolicyPath string
	log               *zap.Logger
}

func NewInterviewUsecase(
	apps *repository.ApplicationRepository,
	jobs *repository.JobRepository,
	users *repository.UserRepository,
	ai service.AIServiceInterface,
	budget service.PromptBudget,
	defaultPolicyPath string,
	log *zap.Logger,
) *InterviewUsecase {
	uc := &InterviewUsecase{
		apps:              apps,
		jobs:              jobs,
		users:             users,
		ai:                ai,
		budget:            budget,
		defaultPolicyPath: defaultPolicyPath,
		log:               log,
	}
	uc.machine = interview.NewMachine(uc, ai)
	return uc
}

// ProfileResumeText extracts the text of the resume stored on the
// student's profile, for applications submitted without a fresh upload.
func (uc *InterviewUsecase) ProfileResumeText(studentID string) (string, error) {
	student, err := uc.users.FindByID(studentID)
	if err != nil {
		return "", err
	}
	if student.ResumePath == "" {
		return "", errors.New("no resume stored on profile")
	}
	return util.ExtractPDFText(student.ResumePath)
}

// StartInterview validates the resume, scores it, generates the technical
// question set and creates the application in one shot. Validation failures
// happen before any row exists; collaborator failures after validation are
// degraded, never fatal.
func (uc *InterviewUsecase) StartInterview(ctx context.Context, studentID, jobID, resumeText string, experienceYears int) (*dto.StartInterviewResponse, error) {
	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.apps.FindByStudentAndJob(studentID, jobID); err == nil {
		return nil, ErrAlreadyApplied
	}
	if !interview.LooksLikeResume(resumeText) {
		return nil, ErrNotAResume
	}
	if job.ExperienceRequired > experienceYears {
		return nil, ErrInsufficientExperience
	}

	report, err := uc.ai.ScoreResume(ctx, resumeText, job.Title, job.Description)
	if err != nil {
		uc.log.Warn("resume scoring unavailable, storing zero-score record", zap.Error(err))
		report = &dto.ATSReport{
			Score:    0,
			Feedback: "Automated scoring was unavailable when this application was submitted. The resume has been kept for manual review.",
		}
	}

	questions, err := uc.ai.GenerateQuestions(ctx, resumeText, job.Title)
	if err != nil {
		uc.log.Warn("question generation failed, interview will use fallback questions", zap.Error(err))
		questions = nil
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		reportJSON = []byte("{}")
	}

	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:                 uuid.New(),
		JobID:              job.ID,
		StudentID:          studentUUID,
		Status:             model.StatusApplied,
		InterviewStep:      model.StepName,
		GeneratedQuestions: datatypes.NewJSONSlice(questions),
		ATSScore:           report.Score,
		ATSFeedback:        report.Feedback,
		ATSReport:          reportJSON,
		ResumeText:         resumeText,
		ExperienceYears:    experienceYears,
	}
	if err := uc.apps.Create(app); err != nil {
		return nil, err
	}

	greetName := "there"
	if student, err := uc.users.FindByID(studentID); err == nil && student.FullName != "" {
		greetName = student.FullName
	}

	return &dto.StartInterviewResponse{
		ApplicationID: app.ID,
		Reply:         interview.Greeting(greetName, job.Title),
		ATSScore:      app.ATSScore,
	}, nil
}

// Chat runs exactly one state machine transition and persists it with an
// optimistic check against the step the turn was computed from.
func (uc *InterviewUsecase) Chat(ctx context.Context, studentID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	app, err := uc.apps.FindByID(req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID.String() != studentID {
		return nil, ErrNotOwner
	}

	expectedStep := app.InterviewStep
	turn, err := uc.machine.ProcessTurn(ctx, app, req.Message)
	if err != nil {
		return nil, err
	}
	if err := uc.apps.SaveTurn(app, expectedStep); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		ApplicationID: app.ID,
		Reply:         turn.Reply,
		IsCompleted:   turn.Completed,
	}, nil
}

func (uc *InterviewUsecase) LogViolation(studentID, applicationID string) (*dto.ViolationResponse, error) {
	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID.String() != studentID {
		return nil, ErrNotOwner
	}

	count, terminated := interview.LogViolation(app, time.Now())
	if err := uc.apps.Save(app); err != nil {
		return nil, err
	}
	return &dto.ViolationResponse{ViolationCount: count, Terminated: terminated}, nil
}

// Summarize digests a transcript for HR review. An empty history yields an
// explicit N/A result, and so does a summarization outage.
func (uc *InterviewUsecase) Summarize(ctx context.Context, hrID, applicationID string) (*dto.InterviewSummary, error) {
	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	job, err := uc.jobs.FindByID(app.JobID.String())
	if err != nil {
		return nil, err
	}
	if job.HRID.String() != hrID {
		return nil, ErrNotOwner
	}

	if len(app.ChatHistory) == 0 {
		return emptySummary("N/A (no interview transcript recorded)"), nil
	}

	summary, err := uc.ai.SummarizeTranscript(ctx, FormatTranscript(app.ChatHistory))
	if err != nil {
		uc.log.Warn("transcript summarization unavailable", zap.Error(err))
		return emptySummary("N/A (summarization temporarily unavailable)"), nil
	}
	return summary, nil
}

func emptySummary(recommendation string) *dto.InterviewSummary {
	return &dto.InterviewSummary{
		Strengths:      []string{},
		Weaknesses:     []string{},
		Recommendation: recommendation,
	}
}

// PolicyText resolves the policy document for an application's job: the
// job's own upload when present, otherwise the company-wide default. A
// missing or unreadable file becomes a placeholder instead of an error.
func (uc *InterviewUsecase) PolicyText(ctx context.Context, app *model.Application) (string, error) {
	path := uc.defaultPolicyPath
	if job, err := uc.jobs.FindByID(app.JobID.String()); err == nil && job.PolicyPath != "" {
		path = job.PolicyPath
	}

	text, err := util.ExtractPDFText(path)
	if err != nil {
		uc.log.Warn("policy document unavailable", zap.String("path", path), zap.Error(err))
		text = policyUnavailable
	}
	return service.Truncate(text, uc.budget.PolicyChars), nil
}
