package main

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy. Validation and not-found failures are terminal for the
// request; conflict and persistence failures are retryable by the caller
// (a delivery is not recorded until the store confirms, so a retry after a
// persistence failure cannot double-count).

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// writeError maps a domain error onto the HTTP surface.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation  *ValidationError
		notFound    *NotFoundError
		conflict    *ConflictError
		persistence *PersistenceError
	)
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &conflict):
		http.Error(w, conflict.Error(), http.StatusConflict)
	case errors.As(err, &persistence):
		http.Error(w, "delivery store unavailable, retry later", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
