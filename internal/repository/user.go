package repository

import (
	"context"

	"notekeeper/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	// Save inserts the user when ID is zero and updates it otherwise.
	Save(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
