package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation conflicts with the current state
// of the resource (e.g. reversing an entry that is already reversed).
var ErrConflict = errors.New("conflict with current resource state")

// ErrStore indicates that the underlying store was unreachable or rejected
// an operation. Transient from the caller's point of view; callers must be
// able to tell it apart from validation failures.
var ErrStore = errors.New("store error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a failure with a code and a human-readable message while
// preserving the underlying cause for errors.Is checks.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewStoreError creates an AppError that matches ErrStore. Repositories use
// it for connectivity and write failures.
func NewStoreError(message string, err error) *AppError {
	if err == nil {
		err = ErrStore
	} else if !errors.Is(err, ErrStore) {
		err = fmt.Errorf("%w: %w", ErrStore, err)
	}
	return &AppError{Code: 500, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
