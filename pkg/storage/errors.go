package storage

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrEmptyKey   = errors.New("blob key is empty")
	ErrInvalidKey = errors.New("blob key contains invalid path segments")
)

// MapHTTPStatus translates storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
