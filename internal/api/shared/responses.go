// Package shared contains response helpers and context keys used across
// all API handlers.
package shared

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
)

// FieldError is a single field-level validation failure reported to clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for all error responses.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code.
// Encoding failures are logged; by then the status line is already out,
// so the response is simply truncated.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Error("failed to encode response",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes a JSON error envelope with the given status code.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{Error: message})
}

// RespondWithFieldErrors writes a 400 validation error envelope carrying
// per-field failures.
func RespondWithFieldErrors(w http.ResponseWriter, r *http.Request, details []FieldError) {
	RespondWithJSON(w, r, http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Details: details,
	})
}

// contextKey is a private type for context keys defined in this package.
type contextKey int

const (
	// userIDKey is the context key under which the authenticated user's ID
	// is stored by the auth middleware.
	userIDKey contextKey = iota
)

// WithUserID returns a copy of ctx carrying the authenticated user's ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user's ID stored in ctx.
// The second return value reports whether an ID was present.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
