package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/domain"
)

// NotificationStore defines the interface for notification record persistence.
type NotificationStore interface {
	// Create saves a new notification record to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Notification if data is invalid.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID retrieves a notification by its unique ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// ListByUser returns the user's notifications ordered by creation time,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// MarkAsRead sets the read flag and read_at timestamp in a single update.
	// Idempotent: marking an already-read notification leaves read_at at the
	// value set by the first call. Returns the updated notification, or
	// ErrNotificationNotFound if it does not exist.
	MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// MarkEmailSent sets the email_sent flag and email_sent_at timestamp in a
	// single update. Idempotent in the same way as MarkAsRead. Returns the
	// updated notification, or ErrNotificationNotFound if it does not exist.
	MarkEmailSent(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// WithTx returns a new NotificationStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) NotificationStore
}
