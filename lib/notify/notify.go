// Package notify hands a rendered report to the SMTP transport. Delivery
// is best-effort by design: a misconfigured transport must never take the
// report generation down with it.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// ErrDeliveryUnavailable means the transport was misconfigured or the send
// failed. Callers log it and move on; it never affects exit status.
var ErrDeliveryUnavailable = errors.New("email delivery unavailable")

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
}

type Notifier struct {
	config Config
}

func New(config Config) Notifier {
	return Notifier{config: config}
}

// Send submits the rendered document over SMTPS. Missing credentials or an
// empty recipient list is a logged no-op returning ErrDeliveryUnavailable.
func (n Notifier) Send(ctx context.Context, subject, htmlBody string, recipients []string) error {
	if n.config.User == "" || n.config.Password == "" {
		slog.WarnContext(ctx, "email credentials not configured, skipping delivery")
		return ErrDeliveryUnavailable
	}
	if len(recipients) == 0 {
		slog.WarnContext(ctx, "no recipients configured, skipping delivery")
		return ErrDeliveryUnavailable
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Study Report <%s>", n.config.User)
	mail.To = recipients
	mail.Subject = subject
	mail.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	err := mail.SendWithTLS(
		addr,
		smtp.PlainAuth("", n.config.User, n.config.Password, n.config.Host),
		&tls.Config{ServerName: n.config.Host},
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send report email", "host", addr, "err", err)
		return fmt.Errorf("%w: %v", ErrDeliveryUnavailable, err)
	}

	slog.InfoContext(ctx, "report email sent", "recipients", len(recipients))
	return nil
}
