package domain

import "time"

// User represents a registered account. PasswordHash is a bcrypt hash and must
// never leave the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the identity attached to a successfully authenticated request.
type Principal struct {
	Username string
}
