package notification

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/oakmont-labs/storefront-api/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/email.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/email.txt.tmpl"))
)

// templateData is the payload every email template renders from. Message
// carries the full event text, so per-event details (order number, amount,
// reset link) are already formatted in.
type templateData struct {
	Username string
	Title    string
	Message  string
}

// templateName maps a notification type to its template. Types without a
// dedicated template use the generic layout.
func templateName(notificationType domain.NotificationType) string {
	switch notificationType {
	case domain.NotificationWelcome,
		domain.NotificationOrderPlaced,
		domain.NotificationOrderShipped,
		domain.NotificationOrderDelivered,
		domain.NotificationPaymentReceived,
		domain.NotificationPasswordReset:
		return string(notificationType)
	default:
		return "generic"
	}
}

// renderEmail produces the plain-text and HTML bodies for the given
// notification type.
func renderEmail(notificationType domain.NotificationType, data templateData) (plain, html string, err error) {
	name := templateName(notificationType)

	var plainBuf strings.Builder
	if err := textTemplates.ExecuteTemplate(&plainBuf, name, data); err != nil {
		return "", "", fmt.Errorf("rendering plain body %q: %w", name, err)
	}

	var htmlBuf strings.Builder
	if err := htmlTemplates.ExecuteTemplate(&htmlBuf, name, data); err != nil {
		return "", "", fmt.Errorf("rendering html body %q: %w", name, err)
	}

	return plainBuf.String(), htmlBuf.String(), nil
}
