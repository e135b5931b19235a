package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/auth/register", app.authHandler.Register)
		r.Post("/auth/login", app.authHandler.Login)
		r.Post("/auth/refresh", app.authHandler.Refresh)

		// Authenticated user endpoints
		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)

			r.Get("/notifications", app.notificationHandler.List)
			r.Post("/notifications/{id}/read", app.notificationHandler.MarkRead)

			// Staff-only account management
			r.Group(func(r chi.Router) {
				r.Use(app.authMiddleware.RequireStaff)

				r.Get("/users", app.userHandler.List)
				r.Post("/users", app.userHandler.Create)
				r.Get("/users/{id}", app.userHandler.Get)
				r.Put("/users/{id}", app.userHandler.Update)
				r.Patch("/users/{id}", app.userHandler.Update)
				r.Delete("/users/{id}", app.userHandler.Delete)
			})
		})
	})

	return r
}
