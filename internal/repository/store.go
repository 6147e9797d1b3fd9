package repository

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrNoteNotFound = errors.New("note not found")
)

// Store groups the repositories of one backend.
type Store interface {
	Init(ctx context.Context) error
	Users() UserRepository
	Notes() NoteRepository
	// WithinTx runs fn with repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Close() error
}
