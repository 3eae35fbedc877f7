package repository

import (
	"errors"

	"github.com/fadilmartias/hireflow/internal/model"
	"gorm.io/gorm"
)

// ErrTurnConflict is returned when a concurrent chat turn already advanced
// the application past the step this turn was computed against.
var ErrTurnConflict = errors.New("interview turn conflict: application state changed concurrently")

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	return r.db.Create(app).Error
}

func (r *ApplicationRepository) Save(app *model.Application) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepository) FindByID(id string) (*model.Application, error) {
	var app model.Application
	err := r.db.First(&app, "id = ?", id).Error
	return &app, err
}

func (r *ApplicationRepository) FindByStudentAndJob(studentID, jobID string) (*model.Application, error) {
	var app model.Application
	err := r.db.First(&app, "student_id = ? AND job_id = ?", studentID, jobID).Error
	return &app, err
}

func (r *ApplicationRepository) ListByStudent(studentID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Order("created_at DESC").Find(&apps, "student_id = ?", studentID).Error
	return apps, err
}

// SaveTurn persists the state produced by one chat turn, guarded by the
// step the turn was computed from. A concurrent turn that committed first
// makes the expected step stale and the update a no-op.
func (r *ApplicationRepository) SaveTurn(app *model.Application, expectedStep model.Step) error {
	result := r.db.Model(&model.Application{}).
		Where("id = ? AND interview_step = ?", app.ID, expectedStep).
		Updates(map[string]any{
			"status":                 app.Status,
			"interview_step":         app.InterviewStep,
			"candidate_info":         app.CandidateInfo,
			"chat_history":           app.ChatHistory,
			"current_question_index": app.CurrentQuestionIndex,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTurnConflict
	}
	return nil
}
