// Package content provides use cases for managing the bilingual content
// repository. One generic service covers every content type; business rules
// (validation, publish transitions, counter semantics) live here, persistence
// behind the repository interface.
package content

import "errors"

// Sentinel errors for content use case operations.
var (
	// ErrNotFound indicates that the requested content item was not found.
	ErrNotFound = errors.New("content not found")

	// ErrInvalidID indicates that the provided content ID is invalid.
	// Content IDs must be positive integers.
	ErrInvalidID = errors.New("invalid content ID")
)
