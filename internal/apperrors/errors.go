package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor lacks the role or ownership required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a uniqueness invariant violation, a lost concurrent
// update, or an action that is not permitted in the entity's current state.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition indicates that the requested status edge does not exist
// in the transition table for the entity kind and actor role.
var ErrInvalidTransition = errors.New("invalid status transition")

// AppError wraps a lower-level error with an HTTP-ish status code and message.
// Repositories use it for unexpected database failures so handlers can map
// them without inspecting driver errors.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewConflictError creates an AppError that unwraps to ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

// NewValidationFailedError creates an AppError that unwraps to ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
