// Package errors provides the standardized error taxonomy shared by every
// action service: Unauthorized, NotFound, ValidationError, DatabaseError.
// Actions catch at their own boundary and return one of these; nothing is
// allowed to escape into the HTTP layer as a panic or a bare error.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
	ErrCodeConflict     ErrorCode = "ALREADY_EXISTS"
)

// Error is a structured application error.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnauthorizedError indicates the caller lacks the required role.
func NewUnauthorizedError(details string) *Error {
	return &Error{
		Code:      ErrCodeUnauthorized,
		Message:   "caller lacks the required role",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError indicates a referenced entity is missing.
func NewNotFoundError(entity, id string) *Error {
	return &Error{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", entity),
		Details:   fmt.Sprintf("id: %s", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError indicates malformed input.
func NewValidationError(details string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   "invalid input",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError wraps an underlying query/write failure. The message is
// passed through verbatim; the frontend displays it as-is.
func NewDatabaseError(err error) *Error {
	return &Error{
		Code:      ErrCodeDatabase,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewConflictError indicates an entity already exists (create-if-absent).
func NewConflictError(entity, details string) *Error {
	return &Error{
		Code:      ErrCodeConflict,
		Message:   fmt.Sprintf("%s already exists", entity),
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// From normalizes any error into a structured *Error. Structured errors pass
// through unchanged; everything else is treated as a database-layer failure.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewDatabaseError(err)
}

// UserMessage is what reaches the UI: a plain string, no structured codes.
func (e *Error) UserMessage() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}
