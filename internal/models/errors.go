package models

import "errors"

// Sentinel errors shared by repositories, services and handlers. Layers wrap
// these with fmt.Errorf("...: %w", ...) and callers match with errors.Is.
var (
	// ErrValidation marks bad input shape, caught before any persistence attempt.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate marks a unique constraint conflict detected at commit time.
	ErrDuplicate = errors.New("already exists")
	// ErrUnauthorized marks a missing current user or an actor that does not
	// own the resource it is trying to mutate.
	ErrUnauthorized = errors.New("access unauthorized")
	// ErrNotFound marks a missing row.
	ErrNotFound = errors.New("not found")
)
