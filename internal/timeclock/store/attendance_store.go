package store

import "context"

// AttendanceEventRecord is one immutable clock-in/out fact. Timestamp is
// unix seconds. Events are never updated or deleted.
type AttendanceEventRecord struct {
	PersonUID string
	Direction Direction
	Channel   Channel
	Timestamp int64
}

// AttendanceStore persists the append-only attendance log.
type AttendanceStore interface {
	Append(ctx context.Context, rec AttendanceEventRecord) error

	// EventsInWindow returns a person's events with lower <= timestamp <=
	// upper, ordered by timestamp with ties broken by insertion order.
	EventsInWindow(ctx context.Context, personUID string, lower, upper int64) ([]AttendanceEventRecord, error)
}
