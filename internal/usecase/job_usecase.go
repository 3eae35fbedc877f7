package usecase

import (
	"context"

	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/fadilmartias/hireflow/internal/repository"
	"github.com/fadilmartias/hireflow/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type JobUsecase struct {
	jobs   *repository.JobRepository
	gemini service.GeminiServiceInterface
	log    *zap.Logger
}

func NewJobUsecase(jobs *repository.JobRepository, gemini service.GeminiServiceInterface, log *zap.Logger) *JobUsecase {
	return &JobUsecase{jobs: jobs, gemini: gemini, log: log}
}

func (uc *JobUsecase) Create(ctx context.Context, hrID string, req dto.JobCreateRequest, policyPath string) (*model.Job, error) {
	hrUUID, err := uuid.Parse(hrID)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:                 uuid.New(),
		HRID:               hrUUID,
		Title:              req.Title,
		Description:        req.Description,
		Company:            req.Company,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		JobType:            req.JobType,
		WorkLocation:       req.WorkLocation,
		ExperienceRequired: req.ExperienceRequired,
		PolicyPath:         policyPath,
	}

	// Embeddings power semantic search; a posting is still valid without
	// one.
	if emb, err := uc.gemini.GenerateEmbedding(ctx, req.Title+"\n"+req.Description); err != nil {
		uc.log.Warn("job embedding unavailable", zap.String("title", req.Title), zap.Error(err))
	} else {
		job.Embedding = pgvector.NewVector(emb)
	}

	if err := uc.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) List() ([]model.Job, error) {
	return uc.jobs.List()
}

func (uc *JobUsecase) Get(id string) (*model.Job, error) {
	return uc.jobs.FindByID(id)
}

// Search ranks postings by semantic similarity to the query. When the
// embedding collaborator is down, it degrades to the plain listing.
func (uc *JobUsecase) Search(ctx context.Context, query string, topK int) ([]model.Job, error) {
	if topK <= 0 {
		topK = 10
	}
	emb, err := uc.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		uc.log.Warn("semantic search degraded to plain listing", zap.Error(err))
		return uc.jobs.List()
	}
	return uc.jobs.Search(pgvector.NewVector(emb), topK)
}
