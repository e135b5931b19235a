package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the event kind a notification records.
type NotificationType string

// Known notification types. These mirror the transactional events the
// storefront emits for an account.
const (
	NotificationWelcome            NotificationType = "welcome"
	NotificationOrderPlaced        NotificationType = "order_placed"
	NotificationOrderShipped       NotificationType = "order_shipped"
	NotificationOrderDelivered     NotificationType = "order_delivered"
	NotificationPaymentReceived    NotificationType = "payment_received"
	NotificationPasswordReset      NotificationType = "password_reset"
	NotificationAccountActivated   NotificationType = "account_activated"
	NotificationAccountDeactivated NotificationType = "account_deactivated"
	NotificationPromotion          NotificationType = "promotion"
	NotificationSystem             NotificationType = "system"
)

// knownNotificationTypes is the set of valid NotificationType values.
var knownNotificationTypes = map[NotificationType]struct{}{
	NotificationWelcome:            {},
	NotificationOrderPlaced:        {},
	NotificationOrderShipped:       {},
	NotificationOrderDelivered:     {},
	NotificationPaymentReceived:    {},
	NotificationPasswordReset:      {},
	NotificationAccountActivated:   {},
	NotificationAccountDeactivated: {},
	NotificationPromotion:          {},
	NotificationSystem:             {},
}

// IsValid reports whether t is one of the known notification types.
func (t NotificationType) IsValid() bool {
	_, ok := knownNotificationTypes[t]
	return ok
}

// Notification is the persisted record of a notification-worthy event for
// a user. It carries two independent boolean+timestamp pairs:
// EmailSent/EmailSentAt for delivery state and Read/ReadAt for read state.
//
// Invariant: EmailSentAt is non-nil if and only if EmailSent is true, and
// ReadAt is non-nil if and only if Read is true. MarkEmailSent and
// MarkAsRead are the only mutations and each maintains its own pair.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	EmailSent   bool             `json:"email_sent"`
	EmailSentAt *time.Time       `json:"email_sent_at,omitempty"`
	Read        bool             `json:"read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewNotification creates an unread, unsent notification for the given user.
// Returns an error if validation fails.
func NewNotification(
	userID uuid.UUID,
	notificationType NotificationType,
	title, message string,
) (*Notification, error) {
	now := time.Now().UTC()
	notification := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := notification.Validate(); err != nil {
		return nil, err
	}

	return notification, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrInvalidID
	}
	if n.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if !n.Type.IsValid() {
		return ErrInvalidNotificationType
	}
	if n.Title == "" {
		return ErrEmptyNotificationTitle
	}
	return nil
}

// MarkAsRead marks the notification as read, setting ReadAt to the current
// time. Idempotent: a notification that is already read is left untouched,
// so ReadAt keeps its original value.
func (n *Notification) MarkAsRead() {
	if n.Read {
		return
	}
	now := time.Now().UTC()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}

// MarkEmailSent marks the notification's email as delivered, setting
// EmailSent and EmailSentAt together. Idempotent: a notification whose
// email is already marked sent is left untouched.
func (n *Notification) MarkEmailSent() {
	if n.EmailSent {
		return
	}
	now := time.Now().UTC()
	n.EmailSent = true
	n.EmailSentAt = &now
	n.UpdatedAt = now
}
