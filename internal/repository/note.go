package repository

import (
	"context"

	"notekeeper/internal/domain"
)

// NoteRepository persists notes. Every lookup and mutation by id is scoped to
// an owner: a note owned by someone else is reported as ErrNoteNotFound.
type NoteRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Note, error)
	// Save inserts the note when ID is zero, otherwise it overwrites title and
	// content of the row matching both ID and OwnerID.
	Save(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, note *domain.Note) error
}
