package dto

import "github.com/google/uuid"

type StartInterviewResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Reply         string    `json:"reply"`
	ATSScore      int       `json:"ats_score"`
}

type ChatRequest struct {
	ApplicationID string `json:"application_id"`
	Message       string `json:"message"`
}

type ChatResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Reply         string    `json:"reply"`
	IsCompleted   bool      `json:"is_completed"`
}

type ViolationRequest struct {
	ApplicationID string `json:"application_id"`
}

type ViolationResponse struct {
	ViolationCount int  `json:"violation_count"`
	Terminated     bool `json:"terminated"`
}

// ATSReport is the structured output of the resume-scoring collaborator,
// persisted whole on the application.
type ATSReport struct {
	Score                   int      `json:"score"`
	MatchedKeywords         []string `json:"matched_keywords"`
	MissingCriticalKeywords []string `json:"missing_critical_keywords"`
	MissingBonusKeywords    []string `json:"missing_bonus_keywords"`
	FormattingIssues        []string `json:"formatting_issues"`
	Feedback                string   `json:"feedback"`
	Strengths               []string `json:"strengths"`
}

// InterviewSummary is the HR-facing digest of a completed transcript.
type InterviewSummary struct {
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
}
