package notify

import (
	"context"
	"log"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// LogNotifier writes codes to the server log instead of sending them.
// Default for dev deployments and the fallback when no SMTP relay is
// configured.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendCodeEmail(_ context.Context, email, code string, direction store.Direction) error {
	n.logger.Printf("[EMAIL] to=%s code=%s action=%s", email, code, actionLabel(direction))
	return nil
}

func (n *LogNotifier) SendCodeSMS(_ context.Context, phone, code string, direction store.Direction) error {
	n.logger.Printf("[SMS] to=%s code=%s action=%s", phone, code, actionLabel(direction))
	return nil
}
