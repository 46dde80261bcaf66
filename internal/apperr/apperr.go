// Package apperr defines the error taxonomy shared by repositories and
// handlers: validation failures, missing entities, illegal state transitions,
// authorization failures and collaborator errors.
package apperr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState signals an illegal status transition, such as
	// answering an invitation that is no longer pending.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnauthorized signals a missing or wrong identity for an
	// owner-scoped or mutating operation.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports malformed input, checked locally before any
// persistence call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Dependency wraps a collaborator failure (store, storage, mail) with
// context; the underlying message is surfaced to the caller.
func Dependency(err error, msg string) error {
	return pkgerrors.Wrap(err, msg)
}
