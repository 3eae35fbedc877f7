package repository

import (
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) Save(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepository) FindByID(id string) (*model.Job, error) {
	var job model.Job
	err := r.db.First(&job, "id = ?", id).Error
	return &job, err
}

func (r *JobRepository) List() ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// Search ranks jobs by embedding distance to the query vector.
func (r *JobRepository) Search(embedding pgvector.Vector, topK int) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM jobs
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&jobs).Error
	return jobs, err
}
