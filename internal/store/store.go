// Package store is the persistence layer over PostgreSQL. Each repository
// owns the SQL for one aggregate; callers translate the sentinel errors
// into structured API errors.
package store

import (
	"errors"

	apperrors "evercraft/internal/common/errors"
)

var (
	ErrNotFound      = errors.New("NOT_FOUND")
	ErrAlreadyExists = errors.New("ALREADY_EXISTS")
)

// AsAppError maps the package sentinels onto the structured error taxonomy.
// Anything unrecognized is a database failure.
func AsAppError(err error, entity, id string) *apperrors.Error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.NewNotFoundError(entity, id)
	case errors.Is(err, ErrAlreadyExists):
		return apperrors.NewConflictError(entity, id)
	default:
		return apperrors.NewDatabaseError(err)
	}
}
