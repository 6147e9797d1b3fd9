package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

const selectNoteColumns = `SELECT id, owner_id, title, content, created_at, updated_at FROM notes`

type NoteRepository struct {
	db querier
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNoteColumns+`
WHERE owner_id = ?
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
	row := r.db.QueryRowContext(ctx, selectNoteColumns+`
WHERE id = ? AND owner_id = ?`,
		id,
		ownerID,
	)
	return scanNote(row)
}

func (r *NoteRepository) Save(ctx context.Context, note *domain.Note) error {
	if note.ID == 0 {
		return r.insert(ctx, note)
	}

	updatedAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, updated_at = ?
WHERE id = ? AND owner_id = ?`,
		note.Title,
		note.Content,
		updatedAt,
		note.ID,
		note.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	note.UpdatedAt = updatedAt
	return nil
}

func (r *NoteRepository) insert(ctx context.Context, note *domain.Note) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO notes (owner_id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		note.OwnerID,
		note.Title,
		note.Content,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("note last insert id: %w", err)
	}
	note.ID = id
	note.CreatedAt = now
	note.UpdatedAt = now
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, note *domain.Note) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND owner_id = ?`, note.ID, note.OwnerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("note rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNoteNotFound
	}
	return nil
}

func scanNote(row interface {
	Scan(dest ...any) error
}) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &note, nil
}
