package repository

import (
	"context"

	"jobly/internal/domain"
)

// ApplicationRepository manages the user/job join table.
type ApplicationRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, username string, jobID int64, status domain.ApplicationStatus) error
	UpdateStatus(ctx context.Context, username string, jobID int64, status domain.ApplicationStatus) error
	JobIDsForUser(ctx context.Context, username string) ([]int64, error)
	JobIDsByUser(ctx context.Context) (map[string][]int64, error)
	ListForUser(ctx context.Context, username string) ([]domain.AppliedJob, error)
}
