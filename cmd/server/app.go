package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/oakmont-labs/storefront-api/internal/api"
	"github.com/oakmont-labs/storefront-api/internal/api/middleware"
	"github.com/oakmont-labs/storefront-api/internal/config"
	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/platform/mail"
	"github.com/oakmont-labs/storefront-api/internal/platform/postgres"
	"github.com/oakmont-labs/storefront-api/internal/service"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
	"github.com/oakmont-labs/storefront-api/internal/service/notification"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// application holds the wired dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	notificationStore store.NotificationStore
	jwtService        auth.JWTService
	userService       *service.UserService
	dispatcher        *notification.Dispatcher

	authHandler         *api.AuthHandler
	userHandler         *api.UserHandler
	notificationHandler *api.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// newApplication wires all services and handlers from configuration and an
// open database handle.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("creating jwt service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db)
	notificationStore := postgres.NewPostgresNotificationStore(db)

	transport := mail.NewSMTPTransport(cfg.Mail)
	dispatcher := notification.NewDispatcher(notificationStore, transport, cfg.Mail.FromAddress)

	hasher := auth.NewBcryptHasher(0)

	// A fresh registration greets the account with a welcome notification.
	// Delivery problems are the dispatcher's to log, never the registration's.
	afterRegister := func(ctx context.Context, user *domain.User) {
		if _, err := dispatcher.SendWelcome(ctx, user); err != nil {
			log.Error("recording welcome notification failed",
				slog.String("user_id", user.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	userService := service.NewUserService(userStore, hasher, hasher, afterRegister).WithTransactions(db)

	app := &application{
		config:            cfg,
		logger:            log,
		db:                db,
		userStore:         userStore,
		notificationStore: notificationStore,
		jwtService:        jwtService,
		userService:       userService,
		dispatcher:        dispatcher,
	}

	validate := api.NewValidator()
	app.authHandler = api.NewAuthHandler(userService, jwtService, validate)
	app.userHandler = api.NewUserHandler(userService, validate)
	app.notificationHandler = api.NewNotificationHandler(notificationStore)
	app.authMiddleware = middleware.NewAuthMiddleware(jwtService, userStore)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("closing database failed", slog.String("error", err.Error()))
		}
	}
}
