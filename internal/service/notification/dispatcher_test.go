package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/mocks"
)

const testFromAddress = "no-reply@storefront.example.com"

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("jane@example.com", "jane", "+15551234567", "correct-horse-battery")
	require.NoError(t, err)
	return user
}

func TestDispatcher_Notify(t *testing.T) {
	t.Parallel()

	t.Run("persists the record and delivers the email", func(t *testing.T) {
		t.Parallel()

		notificationStore := mocks.NewMockNotificationStore()
		transport := &mocks.MockMailTransport{}
		dispatcher := NewDispatcher(notificationStore, transport, testFromAddress)
		user := testUser(t)

		record, err := dispatcher.Notify(context.Background(), user, domain.NotificationSystem,
			"Scheduled maintenance", "The store will be briefly unavailable tonight.", true)
		require.NoError(t, err)

		assert.True(t, record.EmailSent)
		require.NotNil(t, record.EmailSentAt)
		assert.Equal(t, user.ID, record.UserID)

		stored, err := notificationStore.GetByID(context.Background(), record.ID)
		require.NoError(t, err)
		assert.True(t, stored.EmailSent)

		sent := transport.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, testFromAddress, sent[0].From)
		assert.Equal(t, []string{user.Email}, sent[0].To)
		assert.Equal(t, "Scheduled maintenance", sent[0].Subject)
		assert.Contains(t, sent[0].PlainBody, "Hi jane")
		assert.Contains(t, sent[0].PlainBody, "The store will be briefly unavailable tonight.")
		assert.Contains(t, sent[0].HTMLBody, "<html>")
		assert.Contains(t, sent[0].HTMLBody, "Scheduled maintenance")
	})

	t.Run("keeps the record when delivery fails", func(t *testing.T) {
		t.Parallel()

		notificationStore := mocks.NewMockNotificationStore()
		transport := &mocks.MockMailTransport{SendError: errors.New("connection refused")}
		dispatcher := NewDispatcher(notificationStore, transport, testFromAddress)
		user := testUser(t)

		record, err := dispatcher.Notify(context.Background(), user, domain.NotificationPromotion,
			"Weekend sale", "Everything is 20% off this weekend.", true)
		require.NoError(t, err, "delivery failure must not fail the operation")

		assert.False(t, record.EmailSent)
		assert.Nil(t, record.EmailSentAt)

		stored, err := notificationStore.GetByID(context.Background(), record.ID)
		require.NoError(t, err)
		assert.False(t, stored.EmailSent, "record persists with the email unsent")
	})

	t.Run("skips delivery when sendEmail is false", func(t *testing.T) {
		t.Parallel()

		notificationStore := mocks.NewMockNotificationStore()
		transport := &mocks.MockMailTransport{}
		dispatcher := NewDispatcher(notificationStore, transport, testFromAddress)
		user := testUser(t)

		record, err := dispatcher.Notify(context.Background(), user, domain.NotificationSystem,
			"In-app only", "No email for this one.", false)
		require.NoError(t, err)

		assert.False(t, record.EmailSent)
		assert.Empty(t, transport.Sent())
	})

	t.Run("rejects an unknown notification type", func(t *testing.T) {
		t.Parallel()

		dispatcher := NewDispatcher(mocks.NewMockNotificationStore(), &mocks.MockMailTransport{}, testFromAddress)
		user := testUser(t)

		_, err := dispatcher.Notify(context.Background(), user, domain.NotificationType("bogus"),
			"Title", "Message", true)
		assert.ErrorIs(t, err, domain.ErrInvalidNotificationType)
	})

	t.Run("returns the persistence error", func(t *testing.T) {
		t.Parallel()

		notificationStore := mocks.NewMockNotificationStore()
		notificationStore.CreateError = errors.New("database down")
		dispatcher := NewDispatcher(notificationStore, &mocks.MockMailTransport{}, testFromAddress)
		user := testUser(t)

		_, err := dispatcher.Notify(context.Background(), user, domain.NotificationSystem,
			"Title", "Message", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, notificationStore.CreateError)
	})
}

func TestDispatcher_TypedEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		send        func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error)
		wantType    domain.NotificationType
		wantInBody  string
		wantSubject string
	}{
		{
			name: "welcome",
			send: func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error) {
				return d.SendWelcome(ctx, user)
			},
			wantType:    domain.NotificationWelcome,
			wantInBody:  "Welcome to Storefront",
			wantSubject: "Welcome to Storefront!",
		},
		{
			name: "order placed",
			send: func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error) {
				return d.SendOrderPlaced(ctx, user, "ORD-1042")
			},
			wantType:    domain.NotificationOrderPlaced,
			wantInBody:  "ORD-1042",
			wantSubject: "Order confirmed",
		},
		{
			name: "order shipped",
			send: func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error) {
				return d.SendOrderShipped(ctx, user, "ORD-1042")
			},
			wantType:    domain.NotificationOrderShipped,
			wantInBody:  "on its way",
			wantSubject: "Order shipped",
		},
		{
			name: "order delivered",
			send: func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error) {
				return d.SendOrderDelivered(ctx, user, "ORD-1042")
			},
			wantType:    domain.NotificationOrderDelivered,
			wantInBody:  "delivered",
			wantSubject: "Order delivered",
		},
		{
			name: "payment received",
			send: func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error) {
				return d.SendPaymentReceived(ctx, user, "$42.50")
			},
			wantType:    domain.NotificationPaymentReceived,
			wantInBody:  "$42.50",
			wantSubject: "Payment received",
		},
		{
			name: "password reset",
			send: func(d *Dispatcher, ctx context.Context, user *domain.User) (*domain.Notification, error) {
				return d.SendPasswordReset(ctx, user, "https://storefront.example.com/reset/abc123")
			},
			wantType:    domain.NotificationPasswordReset,
			wantInBody:  "https://storefront.example.com/reset/abc123",
			wantSubject: "Password reset requested",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			notificationStore := mocks.NewMockNotificationStore()
			transport := &mocks.MockMailTransport{}
			dispatcher := NewDispatcher(notificationStore, transport, testFromAddress)
			user := testUser(t)

			record, err := tc.send(dispatcher, context.Background(), user)
			require.NoError(t, err)

			assert.Equal(t, tc.wantType, record.Type)
			assert.True(t, record.EmailSent)

			sent := transport.Sent()
			require.Len(t, sent, 1)
			assert.Equal(t, tc.wantSubject, sent[0].Subject)
			assert.Contains(t, sent[0].PlainBody, tc.wantInBody)
		})
	}
}

func TestRenderEmail(t *testing.T) {
	t.Parallel()

	data := templateData{
		Username: "jane",
		Title:    "Some title",
		Message:  "Some message body.",
	}

	for notificationType := range map[domain.NotificationType]struct{}{
		domain.NotificationWelcome:            {},
		domain.NotificationOrderPlaced:        {},
		domain.NotificationOrderShipped:       {},
		domain.NotificationOrderDelivered:     {},
		domain.NotificationPaymentReceived:    {},
		domain.NotificationPasswordReset:      {},
		domain.NotificationAccountActivated:   {},
		domain.NotificationAccountDeactivated: {},
		domain.NotificationPromotion:          {},
		domain.NotificationSystem:             {},
	} {
		notificationType := notificationType
		t.Run(string(notificationType), func(t *testing.T) {
			t.Parallel()

			plain, html, err := renderEmail(notificationType, data)
			require.NoError(t, err)
			assert.Contains(t, plain, "Hi jane")
			assert.True(t, strings.Contains(html, "jane"))
			assert.Contains(t, html, "</html>")
		})
	}
}

func TestRenderEmail_EscapesHTMLInMessage(t *testing.T) {
	t.Parallel()

	_, html, err := renderEmail(domain.NotificationSystem, templateData{
		Username: "jane",
		Title:    "Title",
		Message:  `<script>alert("x")</script>`,
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestDispatcher_RecordIdentity(t *testing.T) {
	t.Parallel()

	notificationStore := mocks.NewMockNotificationStore()
	dispatcher := NewDispatcher(notificationStore, &mocks.MockMailTransport{}, testFromAddress)
	user := testUser(t)

	record, err := dispatcher.SendWelcome(context.Background(), user)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)
}
