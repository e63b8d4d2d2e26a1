package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/internal/observability/middleware"
)

const (
	msgServerError   = "Server error"
	msgInvalidBody   = "Invalid request body"
	msgTokenRequired = "Access token required"
	msgInvalidToken  = "Invalid token"
	msgInvalidCreds  = "Invalid credentials"
	msgTooLarge      = "Upload is too large"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.MessageResponse{Message: msg})
}

// writeError maps the domain error taxonomy onto status codes. Anything
// unrecognised is logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, msgInvalidCreds)
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, msgTokenRequired)
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.As(err, &tooLarge):
		writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
	default:
		middleware.Logger(r.Context()).Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		middleware.Logger(r.Context()).Warn("decode failed", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
