package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// foreignKeyViolationCode is the PostgreSQL error code for foreign key
// constraint violations.
const foreignKeyViolationCode = "23503"

// PostgresNotificationStore implements store.NotificationStore backed by
// PostgreSQL.
type PostgresNotificationStore struct {
	db store.DBTX
}

// Ensure PostgresNotificationStore implements store.NotificationStore
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// NewPostgresNotificationStore creates a notification store over the given
// database handle.
func NewPostgresNotificationStore(db store.DBTX) *PostgresNotificationStore {
	return &PostgresNotificationStore{db: db}
}

// WithTx implements the store.NotificationStore interface.
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &PostgresNotificationStore{db: tx}
}

const notificationColumns = "id, user_id, type, title, message, email_sent, email_sent_at, read, read_at, created_at, updated_at"

// Create implements the store.NotificationStore interface.
func (s *PostgresNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, email_sent, email_sent_at, read, read_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, string(notification.Type),
		notification.Title, notification.Message,
		notification.EmailSent, notification.EmailSentAt,
		notification.Read, notification.ReadAt,
		notification.CreatedAt, notification.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return fmt.Errorf("%w: user %s does not exist", store.ErrInvalidEntity, notification.UserID)
		}
		return fmt.Errorf("inserting notification: %w", err)
	}

	log.Debug("notification created",
		slog.String("notification_id", notification.ID.String()),
		slog.String("type", string(notification.Type)))
	return nil
}

// GetByID implements the store.NotificationStore interface.
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := fmt.Sprintf("SELECT %s FROM notifications WHERE id = $1", notificationColumns)
	return s.scanNotification(s.db.QueryRowContext(ctx, query, id))
}

// ListByUser implements the store.NotificationStore interface.
func (s *PostgresNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	query := fmt.Sprintf("SELECT %s FROM notifications WHERE user_id = $1 ORDER BY created_at DESC", notificationColumns)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		notification := &domain.Notification{}
		if err := rows.Scan(
			&notification.ID, &notification.UserID, &notification.Type,
			&notification.Title, &notification.Message,
			&notification.EmailSent, &notification.EmailSentAt,
			&notification.Read, &notification.ReadAt,
			&notification.CreatedAt, &notification.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	return notifications, nil
}

// MarkAsRead implements the store.NotificationStore interface. The guard on
// the read flag keeps the original read_at on repeated calls.
func (s *PostgresNotificationStore) MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := fmt.Sprintf(`
		UPDATE notifications
		SET read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND read = FALSE
		RETURNING %s`, notificationColumns)

	notification, err := s.scanNotification(s.db.QueryRowContext(ctx, query, id))
	if err == nil {
		return notification, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	// Zero rows updated: either already read (return as-is) or missing.
	return s.GetByID(ctx, id)
}

// MarkEmailSent implements the store.NotificationStore interface with the
// same idempotency as MarkAsRead.
func (s *PostgresNotificationStore) MarkEmailSent(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := fmt.Sprintf(`
		UPDATE notifications
		SET email_sent = TRUE, email_sent_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND email_sent = FALSE
		RETURNING %s`, notificationColumns)

	notification, err := s.scanNotification(s.db.QueryRowContext(ctx, query, id))
	if err == nil {
		return notification, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// scanNotification reads a single notification row, mapping sql.ErrNoRows
// to store.ErrNotificationNotFound.
func (s *PostgresNotificationStore) scanNotification(row *sql.Row) (*domain.Notification, error) {
	notification := &domain.Notification{}
	err := row.Scan(
		&notification.ID, &notification.UserID, &notification.Type,
		&notification.Title, &notification.Message,
		&notification.EmailSent, &notification.EmailSentAt,
		&notification.Read, &notification.ReadAt,
		&notification.CreatedAt, &notification.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("scanning notification: %w", err)
	}
	return notification, nil
}
