// Package handlers provides shared JSON response helpers for HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes it as {"error": ...} with the
// given status code.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}
