package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"notekeeper/internal/repository"
)

const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the postgres implementation of repository.Store.
type Store struct {
	pool *pgxpool.Pool
	dsn  string
	q    querier
	tx   pgx.Tx
}

func NewStore(pool *pgxpool.Pool, dsn string) *Store {
	return &Store{pool: pool, dsn: dsn, q: pool}
}

// Init brings the schema up to date.
func (s *Store) Init(ctx context.Context) error {
	return Migrate(s.dsn)
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

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(&Store{pool: s.pool, dsn: s.dsn, q: tx, tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
