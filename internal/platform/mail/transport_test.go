package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{
			name: "valid plain-only message",
			msg: Message{
				From:      "no-reply@example.com",
				To:        []string{"jane@example.com"},
				Subject:   "Hello",
				PlainBody: "Hello there",
			},
		},
		{
			name: "valid html-only message",
			msg: Message{
				From:     "no-reply@example.com",
				To:       []string{"jane@example.com"},
				Subject:  "Hello",
				HTMLBody: "<p>Hello there</p>",
			},
		},
		{
			name: "no recipients",
			msg: Message{
				From:      "no-reply@example.com",
				Subject:   "Hello",
				PlainBody: "Hello there",
			},
			wantErr: ErrNoRecipients,
		},
		{
			name: "no body",
			msg: Message{
				From:    "no-reply@example.com",
				To:      []string{"jane@example.com"},
				Subject: "Hello",
			},
			wantErr: ErrEmptyBody,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.msg.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEncodeMessage(t *testing.T) {
	t.Parallel()

	t.Run("plain-only message", func(t *testing.T) {
		t.Parallel()

		raw := string(encodeMessage(&Message{
			From:      "no-reply@example.com",
			To:        []string{"jane@example.com", "joe@example.com"},
			Subject:   "Order confirmed",
			PlainBody: "Your order has been placed.",
		}))

		assert.Contains(t, raw, "From: no-reply@example.com\r\n")
		assert.Contains(t, raw, "To: jane@example.com, joe@example.com\r\n")
		assert.Contains(t, raw, "Subject: Order confirmed\r\n")
		assert.Contains(t, raw, "Content-Type: text/plain; charset=utf-8\r\n")
		assert.Contains(t, raw, "Your order has been placed.")
		assert.NotContains(t, raw, "multipart/alternative")
	})

	t.Run("multipart message carries both bodies", func(t *testing.T) {
		t.Parallel()

		raw := string(encodeMessage(&Message{
			From:      "no-reply@example.com",
			To:        []string{"jane@example.com"},
			Subject:   "Welcome",
			PlainBody: "Welcome aboard.",
			HTMLBody:  "<p>Welcome aboard.</p>",
		}))

		assert.Contains(t, raw, "Content-Type: multipart/alternative")
		assert.Contains(t, raw, "Content-Type: text/plain; charset=utf-8")
		assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8")
		assert.Contains(t, raw, "Welcome aboard.")
		assert.Contains(t, raw, "<p>Welcome aboard.</p>")

		// The plain part must come before the HTML part so clients prefer HTML.
		plainIdx := strings.Index(raw, "text/plain")
		htmlIdx := strings.Index(raw, "text/html")
		require.Greater(t, htmlIdx, plainIdx)

		// The closing boundary terminates the message.
		assert.Contains(t, raw, "--\r\n")
	})

	t.Run("non-ascii subject is encoded", func(t *testing.T) {
		t.Parallel()

		raw := string(encodeMessage(&Message{
			From:      "no-reply@example.com",
			To:        []string{"jane@example.com"},
			Subject:   "Commande expédiée",
			PlainBody: "Votre commande est en route.",
		}))

		assert.Contains(t, raw, "=?utf-8?q?")
	})
}
