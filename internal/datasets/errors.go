package datasets

import (
	"errors"
	"net/http"
)

// Domain errors for dataset operations.
var (
	ErrNotFound     = errors.New("dataset not found")
	ErrDuplicate    = errors.New("dataset already exists")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid dataset file")
	ErrEmptyDataset = errors.New("dataset contains no samples")
)

// MapHTTPStatus maps dataset domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrEmptyDataset) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
