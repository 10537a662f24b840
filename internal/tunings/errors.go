package tunings

import (
	"errors"
	"net/http"
)

// Domain errors for tuning operations.
var (
	ErrNotFound       = errors.New("tuning not found")
	ErrDuplicate      = errors.New("tuning already exists")
	ErrInvalidRequest = errors.New("invalid tuning request")
	ErrNoResults      = errors.New("no tunings recorded for dataset")
)

// MapHTTPStatus maps tuning domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoResults) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
