package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
	"github.com/oakmont-labs/storefront-api/internal/platform/mail"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// Dispatcher records notifications and sends the matching emails.
type Dispatcher struct {
	notifications store.NotificationStore
	transport     mail.Transport
	fromAddress   string
}

// NewDispatcher creates a Dispatcher with the given dependencies.
func NewDispatcher(notifications store.NotificationStore, transport mail.Transport, fromAddress string) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		transport:     transport,
		fromAddress:   fromAddress,
	}
}

// Notify records a notification for the user and, when sendEmail is true,
// attempts to deliver the matching email. The record persists regardless of
// delivery outcome: on successful delivery it comes back with EmailSent set,
// on failure the failure is logged and the record stays unsent. A persistence
// failure is the only error Notify returns.
func (d *Dispatcher) Notify(
	ctx context.Context,
	user *domain.User,
	notificationType domain.NotificationType,
	title, message string,
	sendEmail bool,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	record, err := domain.NewNotification(user.ID, notificationType, title, message)
	if err != nil {
		return nil, err
	}

	if err := d.notifications.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persisting notification: %w", err)
	}

	if !sendEmail {
		return record, nil
	}

	plain, html, err := renderEmail(notificationType, templateData{
		Username: user.Username,
		Title:    title,
		Message:  message,
	})
	if err != nil {
		log.Error("rendering notification email failed",
			slog.String("notification_id", record.ID.String()),
			slog.String("type", string(notificationType)),
			slog.String("error", err.Error()))
		return record, nil
	}

	msg := &mail.Message{
		From:      d.fromAddress,
		To:        []string{user.Email},
		Subject:   title,
		PlainBody: plain,
		HTMLBody:  html,
	}
	if err := d.transport.Send(ctx, msg); err != nil {
		log.Warn("notification email delivery failed",
			slog.String("notification_id", record.ID.String()),
			slog.String("type", string(notificationType)),
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return record, nil
	}

	updated, err := d.notifications.MarkEmailSent(ctx, record.ID)
	if err != nil {
		// The email went out; the record just doesn't reflect it.
		log.Warn("marking notification email sent failed",
			slog.String("notification_id", record.ID.String()),
			slog.String("error", err.Error()))
		return record, nil
	}

	log.Info("notification dispatched",
		slog.String("notification_id", updated.ID.String()),
		slog.String("type", string(notificationType)),
		slog.String("user_id", user.ID.String()))
	return updated, nil
}

// SendWelcome greets a freshly registered account.
func (d *Dispatcher) SendWelcome(ctx context.Context, user *domain.User) (*domain.Notification, error) {
	title := "Welcome to Storefront!"
	message := fmt.Sprintf("Your account %s has been created. You can now sign in and start shopping.", user.Username)
	return d.Notify(ctx, user, domain.NotificationWelcome, title, message, true)
}

// SendOrderPlaced confirms a newly placed order.
func (d *Dispatcher) SendOrderPlaced(ctx context.Context, user *domain.User, orderID string) (*domain.Notification, error) {
	title := "Order confirmed"
	message := fmt.Sprintf("Your order %s has been placed successfully.", orderID)
	return d.Notify(ctx, user, domain.NotificationOrderPlaced, title, message, true)
}

// SendOrderShipped announces that an order left the warehouse.
func (d *Dispatcher) SendOrderShipped(ctx context.Context, user *domain.User, orderID string) (*domain.Notification, error) {
	title := "Order shipped"
	message := fmt.Sprintf("Your order %s has been shipped and is on its way.", orderID)
	return d.Notify(ctx, user, domain.NotificationOrderShipped, title, message, true)
}

// SendOrderDelivered confirms an order arrived.
func (d *Dispatcher) SendOrderDelivered(ctx context.Context, user *domain.User, orderID string) (*domain.Notification, error) {
	title := "Order delivered"
	message := fmt.Sprintf("Your order %s has been delivered.", orderID)
	return d.Notify(ctx, user, domain.NotificationOrderDelivered, title, message, true)
}

// SendPaymentReceived confirms a payment.
func (d *Dispatcher) SendPaymentReceived(ctx context.Context, user *domain.User, amount string) (*domain.Notification, error) {
	title := "Payment received"
	message := fmt.Sprintf("We have received your payment of %s. Thank you!", amount)
	return d.Notify(ctx, user, domain.NotificationPaymentReceived, title, message, true)
}

// SendPasswordReset delivers a password reset link.
func (d *Dispatcher) SendPasswordReset(ctx context.Context, user *domain.User, resetLink string) (*domain.Notification, error) {
	title := "Password reset requested"
	message := fmt.Sprintf("Use the following link to reset your password: %s", resetLink)
	return d.Notify(ctx, user, domain.NotificationPasswordReset, title, message, true)
}
