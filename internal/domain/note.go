package domain

import "time"

// Note is a piece of text owned by exactly one user. OwnerID never changes
// after creation.
type Note struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
