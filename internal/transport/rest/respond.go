package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/babylog/babylog-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleError maps domain errors to HTTP responses. Order matters: the
// sleep lifecycle sentinels are checked before the generic sentinels they
// wrap.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		writeErrorCode(w, http.StatusConflict, "a sleep session is already open", "SESSION_ALREADY_OPEN")
	case errors.Is(err, domain.ErrNoOpenSession):
		writeErrorCode(w, http.StatusNotFound, "no open sleep session", "NO_OPEN_SESSION")
	case errors.Is(err, domain.ErrSleepOverlap):
		writeErrorCode(w, http.StatusConflict, "sleep interval overlaps an existing session", "SLEEP_OVERLAP")
	case errors.Is(err, domain.ErrInvalidDuration):
		writeErrorCode(w, http.StatusBadRequest, "sleep duration out of range", "INVALID_DURATION")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseTimeParam parses an optional RFC 3339 query parameter.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
