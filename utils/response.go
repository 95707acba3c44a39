package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg}
func WriteError(w http.ResponseWriter, status int, msg string) {
	_ = WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteValidationError writes a 400 with per-field messages
func WriteValidationError(w http.ResponseWriter, err error) {
	_ = WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "Validation failed",
		Fields: FormatValidationError(err),
	})
}
