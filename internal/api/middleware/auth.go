// Package middleware contains the HTTP middleware for authentication and
// authorization.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// AuthMiddleware validates bearer tokens and enforces staff-only access.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates an AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate requires a valid bearer access token and stores the
// authenticated user's ID in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), tokenString)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff requires the authenticated user to be an active staff
// account. Must run after Authenticate.
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := shared.UserIDFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		user, err := m.userStore.GetByID(r.Context(), userID)
		if err != nil {
			if store.IsNotFoundError(err) {
				// A valid token for a deleted account.
				shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			log.Error("loading account for staff check failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		if !user.IsActive || !user.IsStaff {
			shared.RespondWithError(w, r, http.StatusForbidden, "staff access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
