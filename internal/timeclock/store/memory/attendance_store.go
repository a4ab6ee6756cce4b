package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// AttendanceStore is an in-memory append-only attendance log. Intended
// for tests and dev environments.
type AttendanceStore struct {
	mu     sync.Mutex
	events []store.AttendanceEventRecord
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{}
}

func (s *AttendanceStore) Append(_ context.Context, rec store.AttendanceEventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, rec)
	return nil
}

func (s *AttendanceStore) EventsInWindow(_ context.Context, personUID string, lower, upper int64) ([]store.AttendanceEventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.AttendanceEventRecord
	for _, ev := range s.events {
		if ev.PersonUID != personUID {
			continue
		}
		if ev.Timestamp < lower || ev.Timestamp > upper {
			continue
		}
		out = append(out, ev)
	}
	// The slice is already in insertion order; a stable sort by timestamp
	// preserves it for ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

// Events returns a copy of all recorded events. Test-only helper.
func (s *AttendanceStore) Events() []store.AttendanceEventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.AttendanceEventRecord, len(s.events))
	copy(out, s.events)
	return out
}
