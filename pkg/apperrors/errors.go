package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError means the input was missing or malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a referenced entity is absent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError means a uniqueness or in-use violation.
type ConflictError struct {
	Message string
	Code    string // PostgreSQL error code when raised by the database
}

func (e *ConflictError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
	}
	return e.Message
}

// InvalidStateError means a loaner state-machine precondition failed.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

// PermissionError means the caller's role lacks the required capability.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

// StorageError wraps an underlying persistence failure. The wrapped
// error stays out of client responses.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NewInvalidState(format string, args ...interface{}) error {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

func NewStorage(message string, err error) error {
	return &StorageError{Message: message, Err: err}
}

// StatusFor maps an error to the HTTP status the request boundary
// should answer with.
func StatusFor(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
		state      *InvalidStateError
		permission *PermissionError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &state):
		return http.StatusBadRequest
	case errors.As(err, &permission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to surface to API clients.
// Storage internals are reported generically.
func ClientMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
