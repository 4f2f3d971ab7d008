package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"jobly/internal/domain"
	"jobly/internal/repository"
	"jobly/internal/storage"
)

// ErrStorageUnavailable is returned for logo operations when no object
// storage is configured.
var ErrStorageUnavailable = errors.New("storage service not configured")

// CompanyService describes company lifecycle operations.
type CompanyService interface {
	Create(ctx context.Context, company domain.Company) (*domain.Company, error)
	List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	// Get returns the company together with its jobs.
	Get(ctx context.Context, handle string) (*domain.Company, error)
	Update(ctx context.Context, handle string, patch domain.CompanyPatch) (*domain.Company, error)
	// Delete removes the company and its jobs. Failures to clean up stored
	// logos do not fail the call and are reported as warnings.
	Delete(ctx context.Context, handle string) (warnings []string, err error)
	UploadLogo(ctx context.Context, handle string, logo Upload) (*domain.Company, error)
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type companyService struct {
	companies repository.CompanyRepository
	jobs      repository.JobRepository
	storage   storage.Service
	keyPrefix string
}

// NewCompanyService builds the company service. store may be nil, in which
// case logo uploads fail with ErrStorageUnavailable.
func NewCompanyService(companies repository.CompanyRepository, jobs repository.JobRepository, store storage.Service, keyPrefix string) CompanyService {
	return &companyService{
		companies: companies,
		jobs:      jobs,
		storage:   store,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (s *companyService) Create(ctx context.Context, company domain.Company) (*domain.Company, error) {
	company.Jobs = nil
	if company.NumEmployees != nil && *company.NumEmployees < 0 {
		return nil, domain.BadRequest("numEmployees must be non-negative")
	}
	if err := s.companies.Create(ctx, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *companyService) List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	return s.companies.List(ctx, filter)
}

func (s *companyService) Get(ctx context.Context, handle string) (*domain.Company, error) {
	company, err := s.companies.Get(ctx, handle)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByCompany(ctx, handle)
	if err != nil {
		return nil, err
	}
	company.Jobs = jobs
	return company, nil
}

func (s *companyService) Update(ctx context.Context, handle string, patch domain.CompanyPatch) (*domain.Company, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, handle, patch)
}

func (s *companyService) Delete(ctx context.Context, handle string) ([]string, error) {
	if err := s.companies.Delete(ctx, handle); err != nil {
		return nil, err
	}

	var warnings []string
	if s.storage != nil {
		if err := s.storage.DeletePrefix(ctx, s.logoPrefix(handle)); err != nil {
			warnings = append(warnings, fmt.Sprintf("delete stored logos: %v", err))
		}
	}
	return warnings, nil
}

func (s *companyService) UploadLogo(ctx context.Context, handle string, logo Upload) (*domain.Company, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.companies.Get(ctx, handle); err != nil {
		return nil, err
	}

	key := s.logoPrefix(handle) + uuid.NewString() + strings.ToLower(path.Ext(logo.Filename))
	url, err := s.storage.Put(ctx, storage.Object{
		Key:         key,
		Body:        logo.Body,
		ContentType: logo.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("store logo: %w", err)
	}

	return s.companies.Update(ctx, handle, domain.CompanyPatch{LogoURL: domain.Some(url)})
}

func (s *companyService) logoPrefix(handle string) string {
	if s.keyPrefix == "" {
		return handle + "/"
	}
	return s.keyPrefix + "/" + handle + "/"
}
