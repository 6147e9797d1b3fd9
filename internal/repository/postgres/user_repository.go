package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

type UserRepository struct {
	db querier
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	var err error
	if user.ID == 0 {
		err = r.db.QueryRow(ctx, `
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
RETURNING id, created_at, updated_at`,
			user.Username,
			user.PasswordHash,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	} else {
		err = r.db.QueryRow(ctx, `
UPDATE users
SET username = $1, password_hash = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $3
RETURNING updated_at`,
			user.Username,
			user.PasswordHash,
			user.ID,
		).Scan(&user.UpdatedAt)
	}
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return repository.ErrUserExists
	case errors.Is(err, pgx.ErrNoRows):
		return repository.ErrUserNotFound
	default:
		return fmt.Errorf("save user: %w", err)
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, username, password_hash, created_at, updated_at
FROM users
WHERE username = $1`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, username, password_hash, created_at, updated_at
FROM users
WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
