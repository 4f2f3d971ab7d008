package service

import (
	"context"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

// JobService describes job lifecycle operations.
type JobService interface {
	Create(ctx context.Context, job domain.Job) (*domain.Job, error)
	List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id int64) error
}

type jobService struct {
	jobs repository.JobRepository
}

func NewJobService(jobs repository.JobRepository) JobService {
	return &jobService{jobs: jobs}
}

func (s *jobService) Create(ctx context.Context, job domain.Job) (*domain.Job, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *jobService) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *jobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	return s.jobs.Get(ctx, id)
}

func (s *jobService) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, id, patch)
}

func (s *jobService) Delete(ctx context.Context, id int64) error {
	return s.jobs.Delete(ctx, id)
}
