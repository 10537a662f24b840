package classifications

import (
	"errors"
	"net/http"
)

// Domain errors for classification operations.
var (
	ErrNotFound       = errors.New("classification not found")
	ErrDuplicate      = errors.New("classification already exists")
	ErrInvalidRequest = errors.New("invalid classification request")
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
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
