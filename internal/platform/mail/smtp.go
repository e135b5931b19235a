package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"math/rand"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/oakmont-labs/storefront-api/internal/config"
	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
)

// SMTPTransport delivers mail over SMTP with a bounded per-send timeout.
// It negotiates STARTTLS when the server offers it and authenticates
// with AUTH PLAIN when credentials are configured.
type SMTPTransport struct {
	host        string
	port        int
	username    string
	password    string
	sendTimeout time.Duration
}

// Ensure SMTPTransport implements Transport
var _ Transport = (*SMTPTransport)(nil)

// NewSMTPTransport creates an SMTP transport from mail configuration.
func NewSMTPTransport(cfg config.MailConfig) *SMTPTransport {
	timeout := time.Duration(cfg.SendTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMTPTransport{
		host:        cfg.Host,
		port:        cfg.Port,
		username:    cfg.Username,
		password:    cfg.Password,
		sendTimeout: timeout,
	}
}

// Send implements the Transport interface. The whole SMTP conversation,
// dial included, runs under a single deadline derived from the transport's
// send timeout and the caller's context.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	log := logger.FromContextOrDefault(ctx, slog.Default())

	deadline := time.Now().Add(t.sendTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	addr := net.JoinHostPort(t.host, fmt.Sprintf("%d", t.port))
	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("%w: dialing %s: %v", ErrSendFailed, addr, err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("%w: setting deadline: %v", ErrSendFailed, err)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: handshake with %s: %v", ErrSendFailed, t.host, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: t.host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("%w: starttls: %v", ErrSendFailed, err)
		}
	}

	if t.username != "" {
		auth := smtp.PlainAuth("", t.username, t.password, t.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: authentication: %v", ErrSendFailed, err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrSendFailed, err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("%w: RCPT TO %s: %v", ErrSendFailed, rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrSendFailed, err)
	}
	if _, err := w.Write(encodeMessage(msg)); err != nil {
		w.Close()
		return fmt.Errorf("%w: writing body: %v", ErrSendFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: closing body: %v", ErrSendFailed, err)
	}

	if err := client.Quit(); err != nil {
		// The server already accepted the message; log and move on.
		log.Debug("smtp quit failed after accepted message", slog.String("error", err.Error()))
	}

	log.Debug("email delivered",
		slog.String("host", t.host),
		slog.Int("recipients", len(msg.To)))
	return nil
}

// encodeMessage renders the message as RFC 5322 bytes. Messages with both
// bodies become multipart/alternative with the plain part first so clients
// prefer the HTML part.
func encodeMessage(msg *Message) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.PlainBody != "" && msg.HTMLBody != "":
		boundary := fmt.Sprintf("=_storefront_%d_%d", time.Now().UnixNano(), rand.Int63())
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		writePart(&b, boundary, "text/plain; charset=utf-8", msg.PlainBody)
		writePart(&b, boundary, "text/html; charset=utf-8", msg.HTMLBody)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case msg.HTMLBody != "":
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
		b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		writeQuotedPrintable(&b, msg.HTMLBody)
	default:
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
		b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		writeQuotedPrintable(&b, msg.PlainBody)
	}

	return []byte(b.String())
}

func writePart(b *strings.Builder, boundary, contentType, body string) {
	fmt.Fprintf(b, "--%s\r\n", boundary)
	fmt.Fprintf(b, "Content-Type: %s\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	writeQuotedPrintable(b, body)
}

func writeQuotedPrintable(b *strings.Builder, body string) {
	qp := quotedprintable.NewWriter(b)
	qp.Write([]byte(body))
	qp.Close()
	b.WriteString("\r\n")
}
