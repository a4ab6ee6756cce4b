// Package notify delivers one-time codes to people. Delivery failures are
// the caller's problem only insofar as they choose to log them; code
// issuance never depends on a message arriving.
package notify

import (
	"context"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// Notifier sends a one-time code over a delivery channel.
type Notifier interface {
	SendCodeEmail(ctx context.Context, email, code string, direction store.Direction) error
	SendCodeSMS(ctx context.Context, phone, code string, direction store.Direction) error
}

func actionLabel(direction store.Direction) string {
	if direction == store.DirectionExit {
		return "Clock-Out"
	}
	return "Clock-In"
}
