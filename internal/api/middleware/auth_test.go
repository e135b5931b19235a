package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont-labs/storefront-api/internal/api/middleware"
	"github.com/oakmont-labs/storefront-api/internal/api/shared"
	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/mocks"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
)

func seededStore(t *testing.T, isActive, isStaff bool) (*mocks.MockUserStore, *domain.User) {
	t.Helper()

	user, err := domain.NewUser("jane@example.com", "jane", "+15551234567", "correct-horse-battery")
	require.NoError(t, err)
	user.HashedPassword = "hashed:correct-horse-battery"
	user.Password = ""
	user.IsActive = isActive
	user.IsStaff = isStaff

	userStore := mocks.NewMockUserStore()
	require.NoError(t, userStore.Create(context.Background(), user))
	return userStore, user
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("stores the user id from a valid token", func(t *testing.T) {
		t.Parallel()

		userStore, user := seededStore(t, true, false)
		jwt := &mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID, TokenType: "access"}}
		mw := middleware.NewAuthMiddleware(jwt, userStore)

		var gotUserID uuid.UUID
		handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = shared.UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, gotUserID)
	})

	t.Run("rejects requests without a token", func(t *testing.T) {
		t.Parallel()

		userStore, _ := seededStore(t, true, false)
		mw := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		tests := []struct {
			name   string
			header string
		}{
			{name: "no header", header: ""},
			{name: "wrong scheme", header: "Basic abc"},
			{name: "empty bearer", header: "Bearer "},
		}
		for _, tc := range tests {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.name)
		}
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		t.Parallel()

		userStore, _ := seededStore(t, true, false)
		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		mw := middleware.NewAuthMiddleware(jwt, userStore)
		handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, userStore *mocks.MockUserStore, userID uuid.UUID) *httptest.ResponseRecorder {
		t.Helper()

		mw := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		handler := mw.RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if userID != uuid.Nil {
			req = req.WithContext(shared.WithUserID(req.Context(), userID))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows an active staff account", func(t *testing.T) {
		t.Parallel()

		userStore, user := seededStore(t, true, true)
		rec := serve(t, userStore, user.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a non-staff account", func(t *testing.T) {
		t.Parallel()

		userStore, user := seededStore(t, true, false)
		rec := serve(t, userStore, user.ID)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects a deactivated staff account", func(t *testing.T) {
		t.Parallel()

		userStore, user := seededStore(t, false, true)
		rec := serve(t, userStore, user.ID)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects a token for a deleted account", func(t *testing.T) {
		t.Parallel()

		userStore, _ := seededStore(t, true, true)
		rec := serve(t, userStore, uuid.New())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a request without authentication context", func(t *testing.T) {
		t.Parallel()

		userStore, _ := seededStore(t, true, true)
		rec := serve(t, userStore, uuid.Nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
