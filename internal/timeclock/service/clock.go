package service

import "time"

// Clock abstracts the current time so every temporal decision in the
// engine is deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
