package entity

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "slug_en", Message: "is required"}
	want := "validation error on field 'slug_en': is required"
	if err.Error() != want {
		t.Fatalf("Error()=%q, want %q", err.Error(), want)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &StorageError{Op: "List", Err: inner}

	if !errors.Is(err, inner) {
		t.Fatal("StorageError does not unwrap to inner error")
	}
	if got := err.Error(); got != "List: storage error: connection refused" {
		t.Fatalf("Error()=%q", got)
	}
}

func TestConflictSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("Create: duplicate slug %q: %w", "clean-water", ErrConflict)
	if !errors.Is(err, ErrConflict) {
		t.Fatal("wrapped conflict not detected by errors.Is")
	}
}
