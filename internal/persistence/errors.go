package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrAlreadyExists is returned when a unique constraint rejects a write.
	ErrAlreadyExists = errors.New("persistence: already exists")
	// ErrUnavailable is returned when the backing store cannot serve the call.
	ErrUnavailable = errors.New("persistence: store unavailable")
)
