package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"notekeeper/internal/repository"
)

const createNotesTables = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_owner_id ON notes(owner_id);
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the sqlite implementation of repository.Store.
type Store struct {
	db *sql.DB
	q  querier
	tx *sql.Tx
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := s.q.ExecContext(ctx, createNotesTables); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepository{db: s.q}
}

func (s *Store) Notes() repository.NoteRepository {
	return &NoteRepository{db: s.q}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&Store{db: s.db, q: tx, tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
