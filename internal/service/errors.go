package service

import "errors"

var (
	// ErrDuplicateUsername is returned when registering a username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// Unknown usernames and wrong passwords are reported identically.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound covers both a missing note and a note owned by someone else.
	ErrNotFound = errors.New("note not found")
	// ErrInvalidInput reports a request that fails basic field validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation signals that an authenticated principal has no
	// backing user record. It is a server fault, not a client error.
	ErrInvariantViolation = errors.New("invariant violation")
)
