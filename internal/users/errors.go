package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("user already exists")
	ErrInvalidRequest     = errors.New("invalid user request")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MapHTTPStatus maps user domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrInvalidRole) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
