package service

import (
	"context"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

// ApplicationService manages users' applications to jobs.
type ApplicationService interface {
	Apply(ctx context.Context, username string, jobID int64) error
	// UpdateStatus validates status before touching the store.
	UpdateStatus(ctx context.Context, username string, jobID int64, status string) (domain.ApplicationStatus, error)
	ListForUser(ctx context.Context, username string) ([]domain.AppliedJob, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	users        repository.UserRepository
}

func NewApplicationService(applications repository.ApplicationRepository, users repository.UserRepository) ApplicationService {
	return &applicationService{
		applications: applications,
		users:        users,
	}
}

func (s *applicationService) Apply(ctx context.Context, username string, jobID int64) error {
	return s.applications.Create(ctx, username, jobID, domain.StatusApplied)
}

func (s *applicationService) UpdateStatus(ctx context.Context, username string, jobID int64, raw string) (domain.ApplicationStatus, error) {
	status, err := domain.ParseApplicationStatus(raw)
	if err != nil {
		return "", err
	}
	if err := s.applications.UpdateStatus(ctx, username, jobID, status); err != nil {
		return "", err
	}
	return status, nil
}

func (s *applicationService) ListForUser(ctx context.Context, username string) ([]domain.AppliedJob, error) {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.applications.ListForUser(ctx, username)
}
