package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrStaleStatus means a guarded update matched the booking by ID but
	// not by status: another writer changed the status after the caller
	// read it. The caller must re-read before deciding anything.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)
