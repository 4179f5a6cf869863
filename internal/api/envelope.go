package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/taskboard/internal/service"
)

// Envelope is the uniform response wrapper. Every endpoint uses it, reads
// included, so clients decode one shape.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	raw, err := json.Marshal(data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Error:   "internal",
			Message: "failed to encode response",
		})
		return
	}
	writeJSON(w, status, Envelope{Success: true, Data: raw, Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)
	writeJSON(w, status, Envelope{Success: false, Error: code, Message: err.Error()})
}

// statusForError maps the service error taxonomy onto HTTP status codes:
// NotFound -> 404, ValidationError -> 422, everything else -> 500.
func statusForError(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "validation_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
