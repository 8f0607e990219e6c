package mail

import (
	"context"
	"log/slog"
)

// Relay is the outbound-mail collaborator. Sends are fire-and-forget from the
// caller's point of view: a delivery failure never invalidates work already
// done (an issued reset capability stays valid whether or not the mail made
// it out).
type Relay interface {
	Send(ctx context.Context, toAddress, subject, htmlBody string) error
}

// LogRelay writes the message to the log instead of delivering it. It stands
// in for a real transport in development and anywhere SMTP is not wired up.
type LogRelay struct {
	Logger *slog.Logger
}

func (r *LogRelay) Send(ctx context.Context, toAddress, subject, htmlBody string) error {
	l := r.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Info("mail_send", "to", toAddress, "subject", subject, "body", htmlBody)
	return nil
}
