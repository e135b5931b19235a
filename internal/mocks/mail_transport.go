package mocks

import (
	"context"
	"sync"

	"github.com/oakmont-labs/storefront-api/internal/platform/mail"
)

// MockMailTransport implements mail.Transport for testing. It records
// every sent message and can be configured to fail.
type MockMailTransport struct {
	SendFn func(ctx context.Context, msg *mail.Message) error

	// SendError is returned by the default implementation when set.
	SendError error

	mu   sync.Mutex
	sent []*mail.Message
}

// Ensure MockMailTransport implements mail.Transport
var _ mail.Transport = (*MockMailTransport)(nil)

// Send implements the mail.Transport interface.
func (m *MockMailTransport) Send(ctx context.Context, msg *mail.Message) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	if m.SendError != nil {
		return m.SendError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *msg
	m.sent = append(m.sent, &copied)
	return nil
}

// Sent returns a snapshot of the messages delivered so far.
func (m *MockMailTransport) Sent() []*mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}
