package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Job struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HRID               uuid.UUID       `gorm:"type:uuid;index" json:"hr_id"`
	Title              string          `json:"title"`
	Description        string          `gorm:"type:text" json:"description"`
	Company            string          `json:"company"`
	Location           string          `json:"location"`
	SalaryRange        string          `json:"salary_range"`
	JobType            string          `json:"job_type"`
	WorkLocation       string          `json:"work_location"`
	ExperienceRequired int             `json:"experience_required"`
	PolicyPath         string          `json:"policy_path"`
	Embedding          pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
