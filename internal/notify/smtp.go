package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// SMTPNotifier delivers codes by email through a plain SMTP relay.
// SMS has no provider integration yet and falls back to the log, matching
// the email-first rollout of the delivery channel.
type SMTPNotifier struct {
	addr   string // relay host:port
	from   string
	logger *log.Logger
}

func NewSMTPNotifier(addr, from string, logger *log.Logger) *SMTPNotifier {
	return &SMTPNotifier{addr: addr, from: from, logger: logger}
}

func (n *SMTPNotifier) SendCodeEmail(_ context.Context, email, code string, direction store.Direction) error {
	action := actionLabel(direction)
	subject := fmt.Sprintf("%s Verification Code", action)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", email)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your verification code for %s is: %s\r\n", strings.ToLower(action), code)
	b.WriteString("\r\nThis code is valid for 10 minutes.\r\n")
	b.WriteString("\r\nClock-In/Out System\r\n")

	if err := smtp.SendMail(n.addr, nil, n.from, []string{email}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email, err)
	}
	return nil
}

func (n *SMTPNotifier) SendCodeSMS(ctx context.Context, phone, code string, direction store.Direction) error {
	// TODO: wire an SMS provider (Twilio or similar) once one is chosen.
	n.logger.Printf("[SMS] to=%s code=%s action=%s (no provider configured)", phone, code, actionLabel(direction))
	return nil
}
