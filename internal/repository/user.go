package repository

import (
	"context"

	"jobly/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update expects patch.Password to already hold a password hash.
	Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
