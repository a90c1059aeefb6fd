package session

import "errors"

// Session store errors.
var (
	// ErrNotFound is returned when a session id is unknown or expired.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidInput is returned for malformed session ids.
	ErrInvalidInput = errors.New("invalid input")
)
