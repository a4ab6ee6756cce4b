package service_test

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// fakeClock is a settable clock shared by the service tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// captureNotifier records delivery attempts and signals each one on Sent,
// so tests can wait for the detached delivery goroutine.
type captureNotifier struct {
	mu    sync.Mutex
	dests []string
	Sent  chan struct{}
	fail  bool
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{Sent: make(chan struct{}, 16)}
}

func (n *captureNotifier) SendCodeEmail(_ context.Context, email, _ string, _ store.Direction) error {
	return n.send(email)
}

func (n *captureNotifier) SendCodeSMS(_ context.Context, phone, _ string, _ store.Direction) error {
	return n.send(phone)
}

func (n *captureNotifier) send(dest string) error {
	n.mu.Lock()
	n.dests = append(n.dests, dest)
	fail := n.fail
	n.mu.Unlock()
	n.Sent <- struct{}{}
	if fail {
		return context.DeadlineExceeded
	}
	return nil
}

func (n *captureNotifier) Dests() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.dests))
	copy(out, n.dests)
	return out
}

func strptr(s string) *string { return &s }
