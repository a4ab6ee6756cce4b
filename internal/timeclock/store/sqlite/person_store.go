package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/clock-in-out/server/internal/db"
	"github.com/clock-in-out/server/internal/timeclock/store"
)

type PersonStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewPersonStore(db *sql.DB, writer *dbpkg.Worker) *PersonStore {
	return &PersonStore{db: db, writer: writer}
}

func (s *PersonStore) Create(ctx context.Context, rec store.PersonRecord) error {
	now := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO users(uid, name, key, email, phone, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);
`, rec.UID, rec.Name, optString(rec.Key), optString(rec.Email), optString(rec.Phone), now, now); err != nil {
			return fmt.Errorf("Create insert user: %w", err)
		}
		return nil
	})
}

func (s *PersonStore) FindByUID(ctx context.Context, uid string) (store.PersonRecord, error) {
	return s.findWhere(ctx, "uid = ?", uid)
}

func (s *PersonStore) FindByKey(ctx context.Context, key string) (store.PersonRecord, error) {
	return s.findWhere(ctx, "key = ?", key)
}

func (s *PersonStore) findWhere(ctx context.Context, where string, arg any) (store.PersonRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT uid, name, key, email, phone
FROM users
WHERE `+where+`;`, arg)

	rec, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return store.PersonRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.PersonRecord{}, fmt.Errorf("find user: %w", err)
	}
	return rec, nil
}

func (s *PersonStore) ListWithoutKey(ctx context.Context) ([]store.PersonRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT uid, name, key, email, phone
FROM users
WHERE key IS NULL OR key = ''
ORDER BY uid;`)
	if err != nil {
		return nil, fmt.Errorf("ListWithoutKey query: %w", err)
	}
	defer rows.Close()

	var out []store.PersonRecord
	for rows.Next() {
		rec, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("ListWithoutKey scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PersonStore) AssignKey(ctx context.Context, uid, key string) error {
	uid = strings.TrimSpace(uid)
	key = strings.TrimSpace(key)
	now := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// Keys are unique across the roster; reject before touching the row
		// so the caller gets a typed conflict instead of a constraint error.
		var holder string
		err := tx.QueryRowContext(ctx,
			`SELECT uid FROM users WHERE key = ? AND uid <> ?;`, key, uid,
		).Scan(&holder)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("AssignKey conflict check: %w", err)
		}
		if err == nil {
			return store.ErrDuplicateKey
		}

		res, err := tx.ExecContext(ctx, `
UPDATE users
SET key = ?, updated_at_ms = ?
WHERE uid = ?;`, key, now, uid)
		if err != nil {
			return fmt.Errorf("AssignKey update: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (store.PersonRecord, error) {
	var rec store.PersonRecord
	var key, email, phone sql.NullString

	if err := row.Scan(&rec.UID, &rec.Name, &key, &email, &phone); err != nil {
		return store.PersonRecord{}, err
	}
	rec.Key = nullableString(key)
	rec.Email = nullableString(email)
	rec.Phone = nullableString(phone)
	return rec, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

func optString(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}
