package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobly/internal/domain"
	"jobly/internal/repository/sqlstore"
	"jobly/internal/storage"
)

type fakeStorage struct {
	puts      []storage.Object
	bodies    []string
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) Put(_ context.Context, obj storage.Object) (string, error) {
	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	f.puts = append(f.puts, obj)
	f.bodies = append(f.bodies, string(body))
	return "https://cdn.example.com/" + obj.Key, nil
}

func (f *fakeStorage) DeletePrefix(_ context.Context, prefix string) error {
	f.deleted = append(f.deleted, prefix)
	return f.deleteErr
}

type services struct {
	companies    CompanyService
	jobs         JobService
	users        UserService
	applications ApplicationService
	storage      *fakeStorage
}

func newTestServices(t *testing.T) services {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	companyRepo := sqlstore.NewCompanyRepository(db)
	jobRepo := sqlstore.NewJobRepository(db)
	userRepo := sqlstore.NewUserRepository(db)
	appRepo := sqlstore.NewApplicationRepository(db)
	require.NoError(t, companyRepo.Init(ctx))
	require.NoError(t, jobRepo.Init(ctx))
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, appRepo.Init(ctx))

	store := &fakeStorage{}
	return services{
		companies:    NewCompanyService(companyRepo, jobRepo, store, "logos"),
		jobs:         NewJobService(jobRepo),
		users:        NewUserService(userRepo, appRepo, bcrypt.MinCost),
		applications: NewApplicationService(appRepo, userRepo),
		storage:      store,
	}
}

func intPtr(v int) *int { return &v }

func seedBoard(t *testing.T, s services) *domain.Job {
	t.Helper()
	ctx := context.Background()

	_, err := s.companies.Create(ctx, domain.Company{Handle: "c1", Name: "C1", Description: "Desc1", NumEmployees: intPtr(1)})
	require.NoError(t, err)

	job, err := s.jobs.Create(ctx, domain.Job{Title: "J1", Salary: intPtr(100), CompanyHandle: "c1"})
	require.NoError(t, err)

	_, err = s.users.Register(ctx, domain.NewUser{
		Username:  "u1",
		Password:  "password1",
		FirstName: "U1F",
		LastName:  "U1L",
		Email:     "u1@email.com",
	})
	require.NoError(t, err)
	return job
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := newTestServices(t)
	seedBoard(t, s)
	ctx := context.Background()

	user, err := s.users.Authenticate(ctx, "u1", "password1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = s.users.Authenticate(ctx, "u1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.EqualError(t, err, "Invalid username/password")

	_, err = s.users.Authenticate(ctx, "nope", "password1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.users.Register(ctx, domain.NewUser{Username: "u1", Password: "password1", FirstName: "a", LastName: "b", Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestRegisterGeneratesPassword(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, domain.NewUser{Username: "admin", FirstName: "A", LastName: "D", Email: "a@d.com", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, []int64{}, user.Jobs)

	_, err = s.users.Authenticate(ctx, "admin", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRandomPassword(t *testing.T) {
	pw, err := randomPassword(generatedPasswordLength)
	require.NoError(t, err)
	assert.Len(t, pw, 10)
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), string(r))
	}
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	s := newTestServices(t)
	seedBoard(t, s)
	ctx := context.Background()

	newPassword := "new-password"
	updated, err := s.users.Update(ctx, "u1", domain.UserPatch{Password: &newPassword})
	require.NoError(t, err)
	assert.Empty(t, updated.PasswordHash)

	_, err = s.users.Authenticate(ctx, "u1", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.users.Authenticate(ctx, "u1", newPassword)
	assert.NoError(t, err)
}

func TestUsersCarryAppliedJobs(t *testing.T) {
	s := newTestServices(t)
	job := seedBoard(t, s)
	ctx := context.Background()

	require.NoError(t, s.applications.Apply(ctx, "u1", job.ID))

	user, err := s.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{job.ID}, user.Jobs)
	assert.Empty(t, user.PasswordHash)

	users, err := s.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, []int64{job.ID}, users[0].Jobs)
	assert.Empty(t, users[0].PasswordHash)
}

func TestApplyTwiceFails(t *testing.T) {
	s := newTestServices(t)
	job := seedBoard(t, s)
	ctx := context.Background()

	require.NoError(t, s.applications.Apply(ctx, "u1", job.ID))
	assert.ErrorIs(t, s.applications.Apply(ctx, "u1", job.ID), domain.ErrBadRequest)
	assert.ErrorIs(t, s.applications.Apply(ctx, "u1", job.ID+100), domain.ErrNotFound)
}

func TestUpdateStatusValidatesFirst(t *testing.T) {
	s := newTestServices(t)
	job := seedBoard(t, s)
	ctx := context.Background()

	// no such user or job, yet the bad status is what gets reported
	_, err := s.applications.UpdateStatus(ctx, "nope", 999, "hired")
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = s.applications.UpdateStatus(ctx, "u1", job.ID, "accepted")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.applications.Apply(ctx, "u1", job.ID))
	status, err := s.applications.UpdateStatus(ctx, "u1", job.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, status)

	applied, err := s.applications.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "C1", applied[0].CompanyName)
	assert.Equal(t, domain.StatusAccepted, applied[0].Status)

	_, err = s.applications.ListForUser(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyGetIncludesJobs(t *testing.T) {
	s := newTestServices(t)
	job := seedBoard(t, s)

	company, err := s.companies.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, company.Jobs, 1)
	assert.Equal(t, job.ID, company.Jobs[0].ID)
}

func TestCompanyLogoLifecycle(t *testing.T) {
	s := newTestServices(t)
	seedBoard(t, s)
	ctx := context.Background()

	company, err := s.companies.UploadLogo(ctx, "c1", Upload{
		Filename:    "Logo.PNG",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	require.Len(t, s.storage.puts, 1)

	key := s.storage.puts[0].Key
	assert.True(t, strings.HasPrefix(key, "logos/c1/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "image/png", s.storage.puts[0].ContentType)
	assert.Equal(t, "png-bytes", s.storage.bodies[0])
	require.NotNil(t, company.LogoURL)
	assert.Equal(t, "https://cdn.example.com/"+key, *company.LogoURL)

	_, err = s.companies.UploadLogo(ctx, "nope", Upload{Filename: "a.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, s.storage.puts, 1)

	s.storage.deleteErr = errors.New("bucket gone")
	warnings, err := s.companies.Delete(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"logos/c1/"}, s.storage.deleted)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "bucket gone")

	_, err = s.companies.Delete(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	s := newTestServices(t)
	seedBoard(t, s)

	companies := s.companies.(*companyService)
	companies.storage = nil

	_, err := companies.UploadLogo(context.Background(), "c1", Upload{Filename: "a.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	warnings, err := companies.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestJobValidationBeforeStore(t *testing.T) {
	s := newTestServices(t)
	seedBoard(t, s)
	ctx := context.Background()

	equity := 1.5
	_, err := s.jobs.Create(ctx, domain.Job{Title: "J", Equity: &equity, CompanyHandle: "c1"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = s.jobs.Create(ctx, domain.Job{Title: "J", CompanyHandle: "nope"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = s.jobs.Update(ctx, 1, domain.JobPatch{Equity: domain.Some(-0.1)})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
