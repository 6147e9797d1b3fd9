package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

// UserService describes user registration and authentication.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
	CurrentUser(ctx context.Context, principal domain.Principal) (*domain.User, error)
}

// bcrypt ignores input past this length
const maxPasswordBytes = 72

type userService struct {
	store     repository.Store
	cost      int
	dummyHash []byte
}

// NewUserService builds a UserService hashing passwords with the given bcrypt
// cost. Out of range costs fall back to bcrypt.DefaultCost.
func NewUserService(store repository.Store, cost int) UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// compared against for unknown usernames so both failure paths cost one bcrypt round
	dummy, err := bcrypt.GenerateFromPassword([]byte("notekeeper-dummy-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("generate dummy hash: %v", err))
	}
	return &userService{
		store:     store,
		cost:      cost,
		dummyHash: dummy,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", ErrInvalidInput)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		_, err := tx.Users().GetByUsername(ctx, username)
		switch {
		case err == nil:
			return ErrDuplicateUsername
		case !errors.Is(err, repository.ErrUserNotFound):
			return fmt.Errorf("lookup user: %w", err)
		}

		if err := tx.Users().Save(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserExists) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Authenticate matches username exactly as stored. Passwords bcrypt cannot
// have hashed fail like any other mismatch.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if len(password) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password[:maxPasswordBytes]))
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &domain.Principal{Username: user.Username}, nil
}

func (s *userService) CurrentUser(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	user, err := s.store.Users().GetByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: principal %q has no user record", ErrInvariantViolation, principal.Username)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
