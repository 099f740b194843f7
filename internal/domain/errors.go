package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCollectionNotFound signals an unknown listing collection.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrListingNotFound signals a missing listing.
	ErrListingNotFound = errors.New("listing not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidListing signals a listing that failed validation.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrInvalidQuery signals a search request that could not be parsed.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSessionNotFound signals a missing application state record.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidSession signals an invalid application state change.
	ErrInvalidSession = errors.New("invalid session update")
	// ErrStepIncomplete signals a wizard step whose required fields are missing.
	ErrStepIncomplete = errors.New("wizard step incomplete")
	// ErrUnknownFlow signals an unknown wizard flow or state.
	ErrUnknownFlow = errors.New("unknown wizard flow")
	// ErrSourceUnavailable signals that the listing source could not be read.
	ErrSourceUnavailable = errors.New("listing source unavailable")
	// ErrReadOnly signals a write without a configured listing store.
	ErrReadOnly = errors.New("listing store not configured")
)

// ValidationError wraps ErrInvalidListing with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidListing.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidListing }

// NewValidationError creates a listing validation error for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
