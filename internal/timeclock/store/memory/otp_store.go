package memory

import (
	"context"
	"sync"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// OtpStore keeps one-time codes in memory. All lifecycle transitions run
// under one mutex, which gives the same atomicity the sqlite writer
// transaction provides: issue supersedes live codes in the same critical
// section that inserts the replacement, and consume is a compare-and-set.
type OtpStore struct {
	mu    sync.Mutex
	codes []store.OtpRecord
}

func NewOtpStore() *OtpStore {
	return &OtpStore{}
}

func (s *OtpStore) Issue(_ context.Context, rec store.OtpRecord, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.codes {
		c := &s.codes[i]
		if c.PersonUID == rec.PersonUID && c.Direction == rec.Direction &&
			!c.Used && now < c.ExpiresAt {
			c.Used = true
		}
	}
	s.codes = append(s.codes, rec)
	return nil
}

func (s *OtpStore) Consume(_ context.Context, code string, direction store.Direction, now int64) (store.OtpRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.codes {
		c := &s.codes[i]
		if c.Code == code && c.Direction == direction && !c.Used && now < c.ExpiresAt {
			c.Used = true
			return *c, nil
		}
	}
	return store.OtpRecord{}, store.ErrNotFound
}

func (s *OtpStore) PruneBefore(_ context.Context, cutoff int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.codes[:0]
	var deleted int64
	for _, c := range s.codes {
		if c.ExpiresAt < cutoff {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	s.codes = kept
	return deleted, nil
}

// Codes returns a copy of every stored code. Test-only helper.
func (s *OtpStore) Codes() []store.OtpRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.OtpRecord, len(s.codes))
	copy(out, s.codes)
	return out
}
