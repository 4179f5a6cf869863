package service

import (
	"fmt"

	"github.com/example/taskboard/internal/storage"
)

// ErrNotFound is surfaced unchanged from the storage layer so callers only
// need one sentinel for the missing-id case.
var ErrNotFound = storage.ErrNotFound

// ValidationError reports rejected input. Field names match the JSON field
// the caller sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("service: invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
