package usecase

import (
	"encoding/json"
	"errors"

	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/fadilmartias/hireflow/internal/repository"
	"go.uber.org/zap"
)

var ErrInvalidStatus = errors.New("unsupported status transition")

var hrAssignableStatuses = map[model.Status]bool{
	model.StatusInterviewing: true,
	model.StatusRejected:     true,
	model.StatusOffer:        true,
}

type ApplicationUsecase struct {
	apps  *repository.ApplicationRepository
	jobs  *repository.JobRepository
	users *repository.UserRepository
	log   *zap.Logger
}

func NewApplicationUsecase(apps *repository.ApplicationRepository, jobs *repository.JobRepository, users *repository.UserRepository, log *zap.Logger) *ApplicationUsecase {
	return &ApplicationUsecase{apps: apps, jobs: jobs, users: users, log: log}
}

func (uc *ApplicationUsecase) MyApplications(studentID string) ([]dto.ApplicationListItem, error) {
	apps, err := uc.apps.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ApplicationListItem, 0, len(apps))
	for _, app := range apps {
		item := dto.ApplicationListItem{
			ID:        app.ID,
			JobID:     app.JobID,
			Status:    app.Status,
			AppliedAt: app.CreatedAt,
		}
		if job, err := uc.jobs.FindByID(app.JobID.String()); err == nil {
			item.JobTitle = job.Title
			item.Company = job.Company
		}
		items = append(items, item)
	}
	return items, nil
}

// Detail returns the full application record for the HR user owning the
// posting and marks it viewed.
func (uc *ApplicationUsecase) Detail(hrID, applicationID string) (*dto.ApplicationDetail, error) {
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

	if !app.Viewed {
		app.Viewed = true
		if err := uc.apps.Save(app); err != nil {
			uc.log.Warn("could not mark application viewed", zap.Error(err))
		}
	}

	detail := &dto.ApplicationDetail{
		ID:            app.ID,
		JobID:         app.JobID,
		StudentID:     app.StudentID,
		Status:        app.Status,
		InterviewStep: app.InterviewStep,
		Viewed:        app.Viewed,
		ATSScore:      app.ATSScore,
		ATSFeedback:   app.ATSFeedback,
		ResumeText:    app.ResumeText,
		CandidateInfo: app.CandidateInfo.Data(),
		ChatHistory:   app.ChatHistory,
		CreatedAt:     app.CreatedAt,
	}
	if len(app.ATSReport) > 0 {
		var report any
		if err := json.Unmarshal(app.ATSReport, &report); err == nil {
			detail.ATSReport = report
		}
	}
	if student, err := uc.users.FindByID(app.StudentID.String()); err == nil {
		detail.CandidateName = student.FullName
		detail.CandidateEmail = student.Email
	}
	return detail, nil
}

func (uc *ApplicationUsecase) UpdateStatus(hrID, applicationID string, status model.Status) error {
	if !hrAssignableStatuses[status] {
		return ErrInvalidStatus
	}

	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return err
	}
	job, err := uc.jobs.FindByID(app.JobID.String())
	if err != nil {
		return err
	}
	if job.HRID.String() != hrID {
		return ErrNotOwner
	}

	app.Status = status
	return uc.apps.Save(app)
}
