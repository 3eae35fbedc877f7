package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleHR      = "hr"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `gorm:"type:varchar(20)" json:"role"`
	University  string    `json:"university,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	ResumePath  string    `json:"resume_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}
