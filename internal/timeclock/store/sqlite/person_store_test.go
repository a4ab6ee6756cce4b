package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/clock-in-out/server/internal/timeclock/store"
	"github.com/clock-in-out/server/internal/timeclock/store/sqlite"
)

func TestPersonStore_CreateAndFind(t *testing.T) {
	conn, writer := openTestDB(t)
	persons := sqlite.NewPersonStore(conn, writer)
	ctx := context.Background()

	mustCreatePerson(t, persons, store.PersonRecord{
		UID: "user001", Name: "John Doe",
		Key: strptr("NFC-KEY-001"), Email: strptr("john@example.com"),
	})

	byUID, err := persons.FindByUID(ctx, "user001")
	if err != nil {
		t.Fatalf("FindByUID: %v", err)
	}
	if byUID.Name != "John Doe" {
		t.Errorf("name = %q", byUID.Name)
	}
	if byUID.Key == nil || *byUID.Key != "NFC-KEY-001" {
		t.Errorf("key = %v", byUID.Key)
	}
	if byUID.Phone != nil {
		t.Errorf("phone should be nil, got %q", *byUID.Phone)
	}

	byKey, err := persons.FindByKey(ctx, "NFC-KEY-001")
	if err != nil {
		t.Fatalf("FindByKey: %v", err)
	}
	if byKey.UID != "user001" {
		t.Errorf("uid = %q", byKey.UID)
	}
}

func TestPersonStore_FindMissing(t *testing.T) {
	conn, writer := openTestDB(t)
	persons := sqlite.NewPersonStore(conn, writer)
	ctx := context.Background()

	if _, err := persons.FindByUID(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindByUID: expected ErrNotFound, got %v", err)
	}
	if _, err := persons.FindByKey(ctx, "NOPE"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindByKey: expected ErrNotFound, got %v", err)
	}
}

func TestPersonStore_ListWithoutKey(t *testing.T) {
	conn, writer := openTestDB(t)
	persons := sqlite.NewPersonStore(conn, writer)
	ctx := context.Background()

	mustCreatePerson(t, persons, store.PersonRecord{UID: "user001", Name: "John Doe", Key: strptr("NFC-KEY-001")})
	mustCreatePerson(t, persons, store.PersonRecord{UID: "user002", Name: "Jane Smith"})
	mustCreatePerson(t, persons, store.PersonRecord{UID: "user003", Name: "Bob Johnson"})

	pending, err := persons.ListWithoutKey(ctx)
	if err != nil {
		t.Fatalf("ListWithoutKey: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 unprovisioned, got %d", len(pending))
	}
	if pending[0].UID != "user002" || pending[1].UID != "user003" {
		t.Errorf("unexpected order: %s, %s", pending[0].UID, pending[1].UID)
	}
}

func TestPersonStore_AssignKey(t *testing.T) {
	conn, writer := openTestDB(t)
	persons := sqlite.NewPersonStore(conn, writer)
	ctx := context.Background()

	mustCreatePerson(t, persons, store.PersonRecord{UID: "user001", Name: "John Doe", Key: strptr("NFC-KEY-001")})
	mustCreatePerson(t, persons, store.PersonRecord{UID: "user002", Name: "Jane Smith"})

	if err := persons.AssignKey(ctx, "user002", "NFC-KEY-002"); err != nil {
		t.Fatalf("AssignKey: %v", err)
	}
	rec, err := persons.FindByKey(ctx, "NFC-KEY-002")
	if err != nil {
		t.Fatalf("FindByKey after assign: %v", err)
	}
	if rec.UID != "user002" {
		t.Errorf("uid = %q", rec.UID)
	}

	if err := persons.AssignKey(ctx, "user002", "NFC-KEY-001"); !errors.Is(err, store.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if err := persons.AssignKey(ctx, "ghost", "NFC-KEY-003"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Re-assigning a person's own key is a no-op, not a conflict.
	if err := persons.AssignKey(ctx, "user001", "NFC-KEY-001"); err != nil {
		t.Errorf("self re-assign: %v", err)
	}
}
