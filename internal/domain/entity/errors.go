package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found.
	// Lookups by id or slug return (nil, nil) instead; this sentinel exists
	// for callers that need an error value to propagate.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a uniqueness conflict, typically a duplicate
	// slug raced in by a concurrent create or update. The repository maps
	// storage-level unique constraint violations to this sentinel.
	ErrConflict = errors.New("conflict: already exists")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// StorageError wraps an unexpected storage failure (connectivity, timeout,
// malformed statement) with the name of the repository operation that hit it.
// Constraint violations are not StorageErrors; they map to ErrConflict.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage error: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error { return e.Err }
