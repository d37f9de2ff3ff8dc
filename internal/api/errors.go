package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gwi.com/room-redesign/internal/core"
)

const overloadedNotice = "The AI service is busy right now. Please try again in a moment."

type errorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Notice string `json:"notice,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

// writeError maps core errors onto status codes. Unknown errors are logged
// and reported as internal.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		writeErrorMessage(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, core.ErrInvalidCredentials), errors.Is(err, core.ErrNotLoggedIn):
		writeErrorMessage(w, http.StatusUnauthorized, "auth", err.Error())
	case errors.Is(err, core.ErrRateLimited):
		writeErrorMessage(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.Is(err, core.ErrModelOverloaded):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:  err.Error(),
			Kind:   "overloaded",
			Notice: overloadedNotice,
		})
	case errors.Is(err, core.ErrNoImageGenerated), errors.Is(err, core.ErrGenerationFailed):
		slog.Warn("AI request failed", "error", err)
		writeErrorMessage(w, http.StatusBadGateway, "generation_failed", err.Error())
	case errors.Is(err, core.ErrProfileNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not_found", err.Error())
	default:
		slog.Error("Unhandled request error", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// decodeJSON reads a bounded JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorMessage(w, http.StatusRequestEntityTooLarge, "validation", "request body is too large")
			return false
		}
		writeErrorMessage(w, http.StatusBadRequest, "validation", "Invalid request body: "+err.Error())
		return false
	}
	return true
}
