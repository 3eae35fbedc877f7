package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Step is the interview state machine's current state. Steps only ever
// advance along the fixed order below; company_qna self-loops until the
// candidate opts out.
type Step string

const (
	StepName            Step = "name"
	StepCollege         Step = "college"
	StepExperienceCheck Step = "experience_check"
	StepCGPA            Step = "cgpa"
	StepRoleDetails     Step = "role_details"
	StepSkills          Step = "skills"
	StepTechnical1      Step = "technical_1"
	StepTechnical2      Step = "technical_2"
	StepTechnical3      Step = "technical_3"
	StepCompanyQnA      Step = "company_qna"
	StepCompleted       Step = "completed"
)

type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusReview       Status = "Review"
	StatusRejected     Status = "Rejected"
	StatusOffer        Status = "Offer"
)

// Chat history roles. assistant_qN entries record an answered technical
// question; system_alert entries are the proctoring audit trail.
const (
	RoleUser        = "user"
	RoleAssistant   = "assistant"
	RoleAssistantQ1 = "assistant_q1"
	RoleAssistantQ2 = "assistant_q2"
	RoleAssistantQ3 = "assistant_q3"
	RoleSystemAlert = "system_alert"
)

type ChatEntry struct {
	Role     string `json:"role"`
	Content  string `json:"content,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

// CandidateInfo accumulates one key per completed profiling step. Keys are
// never cleared once set.
type CandidateInfo struct {
	Name                string `json:"name,omitempty"`
	College             string `json:"college,omitempty"`
	IsFresher           bool   `json:"is_fresher"`
	PreviousInstitution string `json:"previous_institution,omitempty"`
	RoleDetails         string `json:"role_details,omitempty"`
	CGPA                string `json:"cgpa,omitempty"`
	Skills              string `json:"skills,omitempty"`
}

type Application struct {
	ID                   uuid.UUID                          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID                uuid.UUID                          `gorm:"type:uuid;index" json:"job_id"`
	StudentID            uuid.UUID                          `gorm:"type:uuid;index" json:"student_id"`
	Status               Status                             `gorm:"type:varchar(50)" json:"status"`
	InterviewStep        Step                               `gorm:"type:varchar(50)" json:"interview_step"`
	CandidateInfo        datatypes.JSONType[CandidateInfo]  `json:"candidate_info"`
	GeneratedQuestions   datatypes.JSONSlice[string]        `json:"generated_questions"`
	CurrentQuestionIndex int                                `json:"current_question_index"`
	ChatHistory          datatypes.JSONSlice[ChatEntry]     `json:"chat_history"`
	ATSScore             int                                `json:"ats_score"`
	ATSFeedback          string                             `gorm:"type:text" json:"ats_feedback"`
	ATSReport            datatypes.JSON                     `gorm:"type:jsonb" json:"ats_report"`
	ResumeText           string                             `gorm:"type:text" json:"resume_text"`
	ExperienceYears      int                                `json:"experience_years"`
	Viewed               bool                               `json:"viewed"`
	CreatedAt            time.Time                          `json:"created_at"`
	UpdatedAt            time.Time                          `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}
