package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	dbpkg "github.com/clock-in-out/server/internal/db"
	"github.com/clock-in-out/server/internal/timeclock/store"
	"github.com/clock-in-out/server/internal/timeclock/store/sqlite"
)

// openTestDB opens a migrated database in a per-test temp directory and
// wires the single-goroutine writer all stores share.
func openTestDB(t *testing.T) (*sql.DB, *dbpkg.Worker) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := dbpkg.Open(context.Background(), dbpkg.Config{Path: path, Env: "dev"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	writer := dbpkg.NewWorker(conn)
	t.Cleanup(func() {
		writer.Close()
		conn.Close()
	})
	return conn, writer
}

func mustCreatePerson(t *testing.T, persons *sqlite.PersonStore, rec store.PersonRecord) {
	t.Helper()
	if err := persons.Create(context.Background(), rec); err != nil {
		t.Fatalf("create person %s: %v", rec.UID, err)
	}
}

func strptr(s string) *string { return &s }
