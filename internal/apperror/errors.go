// Package apperror defines the error taxonomy shared by the data-access layer
// and the HTTP controllers.
package apperror

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrNotFound: the requested entity, or a referenced parent, is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the favourite pair already exists.
	ErrConflict = errors.New("already exists")
	// ErrNotAssociated: the favourite pair to remove does not exist.
	ErrNotAssociated = errors.New("not associated")
	// ErrInvalidInput: the request could not be bound or validated.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConstraint: the database rejected a write on a constraint.
	ErrConstraint = errors.New("constraint violation")
)

// FromGorm translates GORM errors into the taxonomy above. Errors it does not
// recognise are returned unchanged. Requires gorm.Config.TranslateError.
func FromGorm(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConstraint
	}
	return err
}

// MapErrorToStatus maps the taxonomy to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrNotAssociated),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrConstraint):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
