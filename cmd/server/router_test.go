package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont-labs/storefront-api/internal/api"
	"github.com/oakmont-labs/storefront-api/internal/api/middleware"
	"github.com/oakmont-labs/storefront-api/internal/config"
	"github.com/oakmont-labs/storefront-api/internal/mocks"
	"github.com/oakmont-labs/storefront-api/internal/service"
)

// testApplication wires the router over in-memory mocks so routing and
// middleware can be exercised without a database.
func testApplication() *application {
	userStore := mocks.NewMockUserStore()
	notificationStore := mocks.NewMockNotificationStore()
	hasher := &mocks.MockPasswordHasher{}
	jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
	userService := service.NewUserService(userStore, hasher, hasher, nil)
	validate := api.NewValidator()

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		},
		logger:              slog.New(slog.NewTextHandler(os.Stderr, nil)),
		userStore:           userStore,
		notificationStore:   notificationStore,
		jwtService:          jwtService,
		userService:         userService,
		authHandler:         api.NewAuthHandler(userService, jwtService, validate),
		userHandler:         api.NewUserHandler(userService, validate),
		notificationHandler: api.NewNotificationHandler(notificationStore),
		authMiddleware:      middleware.NewAuthMiddleware(jwtService, userStore),
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := testApplication().setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	router := testApplication().setupRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/users"},
		{http.MethodDelete, "/api/users/4f7f54a4-8b1a-44f0-90dc-9b53a6cd8f6f"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_PublicAuthRoutesAreExposed(t *testing.T) {
	t.Parallel()

	router := testApplication().setupRouter()

	// An empty body is a 400, not a 404 or 401: the route exists and is public.
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/refresh"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
