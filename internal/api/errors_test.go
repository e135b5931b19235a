package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: http.StatusOK},
		{name: "missing credentials", err: auth.ErrMissingCredentials, want: http.StatusBadRequest},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "wrapped refresh token error", err: fmt.Errorf("refresh: %w", auth.ErrInvalidRefreshToken), want: http.StatusUnauthorized},
		{name: "disabled account", err: auth.ErrAccountDisabled, want: http.StatusForbidden},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "notification not found", err: store.ErrNotificationNotFound, want: http.StatusNotFound},
		{name: "bare duplicate", err: store.ErrEmailExists, want: http.StatusConflict},
		{name: "validation error", err: domain.NewValidationError("email", "bad", domain.ErrInvalidEmail), want: http.StatusBadRequest},
		{name: "duplicate wrapped as validation error", err: domain.NewValidationError("email", "taken", store.ErrEmailExists), want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}
