package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// PersonService covers roster provisioning: creating people and binding
// physical credentials to them.
type PersonService struct {
	persons store.PersonStore
}

func NewPersonService(persons store.PersonStore) *PersonService {
	return &PersonService{persons: persons}
}

var errNameRequired = errors.New("name is required")

// Create mints a new person with a generated identifier. Email and phone
// are optional and only matter for OTP delivery later.
func (s *PersonService) Create(ctx context.Context, name, email, phone string) (store.PersonRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.PersonRecord{}, errNameRequired
	}

	rec := store.PersonRecord{
		UID:  uuid.NewString(),
		Name: name,
	}
	if email = strings.TrimSpace(email); email != "" {
		rec.Email = &email
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		rec.Phone = &phone
	}

	if err := s.persons.Create(ctx, rec); err != nil {
		return store.PersonRecord{}, fmt.Errorf("create person: %w", err)
	}
	return rec, nil
}

// WithoutKey lists people still waiting for a physical credential.
func (s *PersonService) WithoutKey(ctx context.Context) ([]store.PersonRecord, error) {
	out, err := s.persons.ListWithoutKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unprovisioned: %w", err)
	}
	return out, nil
}

// AssignKey binds a credential token to a person. Tokens are unique
// across the roster.
func (s *PersonService) AssignKey(ctx context.Context, uid, key string) (store.PersonRecord, error) {
	uid = strings.TrimSpace(uid)
	key = strings.TrimSpace(key)
	if uid == "" || key == "" {
		return store.PersonRecord{}, errors.New("uid and key are required")
	}

	if err := s.persons.AssignKey(ctx, uid, key); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.PersonRecord{}, ErrPersonNotFound
		case errors.Is(err, store.ErrDuplicateKey):
			return store.PersonRecord{}, ErrCredentialInUse
		default:
			return store.PersonRecord{}, fmt.Errorf("assign key: %w", err)
		}
	}

	rec, err := s.persons.FindByUID(ctx, uid)
	if err != nil {
		return store.PersonRecord{}, fmt.Errorf("reload person: %w", err)
	}
	return rec, nil
}
