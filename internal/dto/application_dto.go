package dto

import (
	"time"

	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/google/uuid"
)

type ApplicationListItem struct {
	ID        uuid.UUID    `json:"id"`
	JobID     uuid.UUID    `json:"job_id"`
	Status    model.Status `json:"status"`
	JobTitle  string       `json:"job_title"`
	Company   string       `json:"company"`
	AppliedAt time.Time    `json:"applied_at"`
}

type ApplicationDetail struct {
	ID             uuid.UUID           `json:"id"`
	JobID          uuid.UUID           `json:"job_id"`
	StudentID      uuid.UUID           `json:"student_id"`
	Status         model.Status        `json:"status"`
	InterviewStep  model.Step          `json:"interview_step"`
	Viewed         bool                `json:"viewed"`
	ATSScore       int                 `json:"ats_score"`
	ATSFeedback    string              `json:"ats_feedback"`
	ATSReport      any                 `json:"ats_report,omitempty"`
	ResumeText     string              `json:"resume_text"`
	CandidateName  string              `json:"candidate_name"`
	CandidateEmail string              `json:"candidate_email"`
	CandidateInfo  model.CandidateInfo `json:"candidate_info"`
	ChatHistory    []model.ChatEntry   `json:"chat_history"`
	CreatedAt      time.Time           `json:"created_at"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
