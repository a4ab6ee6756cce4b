package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// ScheduleStore resolves roster membership against an in-memory entry
// table. It needs the person store to materialize full person records the
// way the sqlite implementation's join does.
type ScheduleStore struct {
	mu      sync.RWMutex
	entries []store.ScheduleEntryRecord
	persons *PersonStore
}

func NewScheduleStore(persons *PersonStore) *ScheduleStore {
	return &ScheduleStore{persons: persons}
}

func (s *ScheduleStore) Add(_ context.Context, rec store.ScheduleEntryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, rec)
	return nil
}

func (s *ScheduleStore) PersonsScheduledAt(ctx context.Context, day, hour int, excludeRooms []string) ([]store.PersonRecord, error) {
	excluded := make(map[string]struct{}, len(excludeRooms))
	for _, r := range excludeRooms {
		excluded[r] = struct{}{}
	}

	s.mu.RLock()
	uids := make(map[string]struct{})
	for _, e := range s.entries {
		if e.Day != day || e.Hour != hour {
			continue
		}
		if _, skip := excluded[e.Room]; skip {
			continue
		}
		uids[e.PersonUID] = struct{}{}
	}
	s.mu.RUnlock()

	out := make([]store.PersonRecord, 0, len(uids))
	for uid := range uids {
		rec, err := s.persons.FindByUID(ctx, uid)
		if err != nil {
			// Entry for a person that was never created; skip rather
			// than fail the whole roster.
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}
