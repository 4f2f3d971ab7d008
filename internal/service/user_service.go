package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

const (
	generatedPasswordLength = 10
	passwordAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrInvalidCredentials indicates that provided login credentials are incorrect.
var ErrInvalidCredentials error = &domain.Error{Kind: domain.KindUnauthorized, Message: "Invalid username/password"}

// UserService describes user lifecycle operations. Returned users never carry
// a password hash.
type UserService interface {
	// Register creates the user, generating a password when none is given.
	Register(ctx context.Context, input domain.NewUser) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	users        repository.UserRepository
	applications repository.ApplicationRepository
	bcryptCost   int
}

func NewUserService(users repository.UserRepository, applications repository.ApplicationRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		users:        users,
		applications: applications,
		bcryptCost:   bcryptCost,
	}
}

func (s *userService) Register(ctx context.Context, input domain.NewUser) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.BadRequest("username is required")
	}

	password := input.Password
	if password == "" {
		generated, err := randomPassword(generatedPasswordLength)
		if err != nil {
			return nil, err
		}
		password = generated
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		IsAdmin:      input.IsAdmin,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Jobs = []int64{}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := s.applications.JobIDsByUser(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
		users[i].Jobs = jobs[users[i].Username]
		if users[i].Jobs == nil {
			users[i].Jobs = []int64{}
		}
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	jobs, err := s.applications.JobIDsForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Jobs = jobs
	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}

	user, err := s.users.Update(ctx, username, patch)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func randomPassword(n int) (string, error) {
	limit := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		Jobs:      user.Jobs,
	}
}
