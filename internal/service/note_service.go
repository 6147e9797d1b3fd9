package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

// NoteService coordinates note operations. Every method is scoped to owner.
type NoteService interface {
	Create(ctx context.Context, title, content string, owner *domain.User) (*domain.Note, error)
	ListForOwner(ctx context.Context, owner *domain.User) ([]domain.Note, error)
	GetForOwner(ctx context.Context, id int64, owner *domain.User) (*domain.Note, error)
	Update(ctx context.Context, id int64, title, content string, owner *domain.User) (*domain.Note, error)
	Delete(ctx context.Context, id int64, owner *domain.User) error
}

type noteService struct {
	store repository.Store
}

func NewNoteService(store repository.Store) NoteService {
	return &noteService{store: store}
}

func (s *noteService) Create(ctx context.Context, title, content string, owner *domain.User) (*domain.Note, error) {
	if err := validateNote(title); err != nil {
		return nil, err
	}

	note := &domain.Note{
		OwnerID: owner.ID,
		Title:   title,
		Content: content,
	}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		return tx.Notes().Save(ctx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *noteService) ListForOwner(ctx context.Context, owner *domain.User) ([]domain.Note, error) {
	notes, err := s.store.Notes().ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) GetForOwner(ctx context.Context, id int64, owner *domain.User) (*domain.Note, error) {
	return findOwned(ctx, s.store, id, owner)
}

// Update resolves ownership before validating, so a foreign note is a miss
// whatever the payload.
func (s *noteService) Update(ctx context.Context, id int64, title, content string, owner *domain.User) (*domain.Note, error) {
	var updated *domain.Note
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		note, err := findOwned(ctx, tx, id, owner)
		if err != nil {
			return err
		}
		if err := validateNote(title); err != nil {
			return err
		}
		note.Title = title
		note.Content = content
		if err := tx.Notes().Save(ctx, note); err != nil {
			return notFound(err)
		}
		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *noteService) Delete(ctx context.Context, id int64, owner *domain.User) error {
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		note, err := findOwned(ctx, tx, id, owner)
		if err != nil {
			return err
		}
		return notFound(tx.Notes().Delete(ctx, note))
	})
}

func findOwned(ctx context.Context, store repository.Store, id int64, owner *domain.User) (*domain.Note, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	note, err := store.Notes().GetByIDAndOwner(ctx, id, owner.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return note, nil
}

// notFound translates the store's miss into the service level ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNoteNotFound) {
		return ErrNotFound
	}
	return err
}

func validateNote(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return nil
}
