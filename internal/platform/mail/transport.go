package mail

import (
	"context"
	"errors"
)

// Common mail errors.
var (
	// ErrNoRecipients indicates a message was submitted without any
	// recipient addresses.
	ErrNoRecipients = errors.New("mail: message has no recipients")

	// ErrEmptyBody indicates a message was submitted with neither a
	// plain-text nor an HTML body.
	ErrEmptyBody = errors.New("mail: message has no body")

	// ErrSendFailed wraps transport-level delivery failures.
	ErrSendFailed = errors.New("mail: send failed")
)

// Message is a single outbound email. At least one of PlainBody and
// HTMLBody must be set; when both are present the message is sent as
// multipart/alternative with the HTML part preferred.
type Message struct {
	From      string
	To        []string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Validate checks that the message is deliverable.
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if m.PlainBody == "" && m.HTMLBody == "" {
		return ErrEmptyBody
	}
	return nil
}

// Transport delivers email messages. Implementations must honor context
// cancellation and return an error wrapping ErrSendFailed when delivery
// does not complete.
type Transport interface {
	// Send delivers the message, blocking until the server accepts it
	// or the context is done.
	Send(ctx context.Context, msg *Message) error
}
