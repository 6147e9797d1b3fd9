package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

const selectNoteColumns = `SELECT id, owner_id, title, content, created_at, updated_at FROM notes`

type NoteRepository struct {
	db querier
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, selectNoteColumns+`
WHERE owner_id = $1
ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Note, error) {
	row := r.db.QueryRow(ctx, selectNoteColumns+`
WHERE id = $1 AND owner_id = $2`,
		id,
		ownerID,
	)
	return scanNote(row)
}

func (r *NoteRepository) Save(ctx context.Context, note *domain.Note) error {
	if note.ID == 0 {
		err := r.db.QueryRow(ctx, `
INSERT INTO notes (owner_id, title, content)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`,
			note.OwnerID,
			note.Title,
			note.Content,
		).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
		return nil
	}

	err := r.db.QueryRow(ctx, `
UPDATE notes
SET title = $1, content = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $3 AND owner_id = $4
RETURNING updated_at`,
		note.Title,
		note.Content,
		note.ID,
		note.OwnerID,
	).Scan(&note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNoteNotFound
	}
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, note *domain.Note) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND owner_id = $2`, note.ID, note.OwnerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNoteNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &note, nil
}
