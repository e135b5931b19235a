package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// MockNotificationStore implements store.NotificationStore for testing.
// The default implementation keeps records in an in-memory map and applies
// the same idempotent mark semantics as the real store.
type MockNotificationStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, notification *domain.Notification) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByUserFn    func(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	MarkAsReadFn    func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	MarkEmailSentFn func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// Data for default implementation
	Notifications map[uuid.UUID]*domain.Notification
	CreateError   error
}

// Ensure MockNotificationStore implements store.NotificationStore
var _ store.NotificationStore = (*MockNotificationStore)(nil)

// NewMockNotificationStore creates a new mock store with initialized defaults.
func NewMockNotificationStore() *MockNotificationStore {
	return &MockNotificationStore{
		Notifications: make(map[uuid.UUID]*domain.Notification),
	}
}

// Create implements the NotificationStore interface.
func (m *MockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, notification)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	stored := *notification
	m.Notifications[notification.ID] = &stored
	return nil
}

// GetByID implements the NotificationStore interface.
func (m *MockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	notification, exists := m.Notifications[id]
	if !exists {
		return nil, store.ErrNotificationNotFound
	}
	copied := *notification
	return &copied, nil
}

// ListByUser implements the NotificationStore interface.
func (m *MockNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	var notifications []*domain.Notification
	for _, notification := range m.Notifications {
		if notification.UserID == userID {
			copied := *notification
			notifications = append(notifications, &copied)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkAsRead implements the NotificationStore interface.
func (m *MockNotificationStore) MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.MarkAsReadFn != nil {
		return m.MarkAsReadFn(ctx, id)
	}

	notification, exists := m.Notifications[id]
	if !exists {
		return nil, store.ErrNotificationNotFound
	}
	if !notification.Read {
		now := time.Now().UTC()
		notification.Read = true
		notification.ReadAt = &now
		notification.UpdatedAt = now
	}
	copied := *notification
	return &copied, nil
}

// MarkEmailSent implements the NotificationStore interface.
func (m *MockNotificationStore) MarkEmailSent(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.MarkEmailSentFn != nil {
		return m.MarkEmailSentFn(ctx, id)
	}

	notification, exists := m.Notifications[id]
	if !exists {
		return nil, store.ErrNotificationNotFound
	}
	if !notification.EmailSent {
		now := time.Now().UTC()
		notification.EmailSent = true
		notification.EmailSentAt = &now
		notification.UpdatedAt = now
	}
	copied := *notification
	return &copied, nil
}

// WithTx implements the NotificationStore interface. The mock has no
// transaction concept, so it returns itself.
func (m *MockNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return m
}
