package repository

import (
	"context"

	"jobly/internal/domain"
)

// CompanyRepository exposes persistence operations for companies.
type CompanyRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, company *domain.Company) error
	List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	Get(ctx context.Context, handle string) (*domain.Company, error)
	Update(ctx context.Context, handle string, patch domain.CompanyPatch) (*domain.Company, error)
	Delete(ctx context.Context, handle string) error
}

// JobRepository exposes persistence operations for jobs.
type JobRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, job *domain.Job) error
	List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ListByCompany(ctx context.Context, handle string) ([]domain.Job, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id int64) error
}
