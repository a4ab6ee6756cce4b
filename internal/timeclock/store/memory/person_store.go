package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

type PersonStore struct {
	mu    sync.RWMutex
	byUID map[string]store.PersonRecord
	order []string
}

func NewPersonStore() *PersonStore {
	return &PersonStore{byUID: make(map[string]store.PersonRecord)}
}

func (s *PersonStore) Create(_ context.Context, rec store.PersonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUID[rec.UID]; !exists {
		s.order = append(s.order, rec.UID)
	}
	s.byUID[rec.UID] = rec
	return nil
}

func (s *PersonStore) FindByUID(_ context.Context, uid string) (store.PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byUID[uid]
	if !ok {
		return store.PersonRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *PersonStore) FindByKey(_ context.Context, key string) (store.PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.byUID {
		if rec.Key != nil && *rec.Key == key {
			return rec, nil
		}
	}
	return store.PersonRecord{}, store.ErrNotFound
}

func (s *PersonStore) ListWithoutKey(_ context.Context) ([]store.PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.PersonRecord
	for _, uid := range s.order {
		rec := s.byUID[uid]
		if rec.Key == nil || strings.TrimSpace(*rec.Key) == "" {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (s *PersonStore) AssignKey(_ context.Context, uid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byUID[uid]
	if !ok {
		return store.ErrNotFound
	}
	for otherUID, other := range s.byUID {
		if otherUID != uid && other.Key != nil && *other.Key == key {
			return store.ErrDuplicateKey
		}
	}
	rec.Key = &key
	s.byUID[uid] = rec
	return nil
}
