package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/clock-in-out/server/internal/db"
	"github.com/clock-in-out/server/internal/timeclock/store"
)

type OtpStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewOtpStore(db *sql.DB, writer *dbpkg.Worker) *OtpStore {
	return &OtpStore{db: db, writer: writer}
}

// Issue supersedes every live code for (person, direction) and inserts the
// replacement inside one writer transaction, so a concurrent Consume sees
// either the old codes live or the new one, never both.
func (s *OtpStore) Issue(ctx context.Context, rec store.OtpRecord, now int64) error {
	createdMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
UPDATE otp_codes
SET used = 1
WHERE user_uid = ? AND direction = ? AND used = 0 AND expires_at > ?;
`, rec.PersonUID, string(rec.Direction), now); err != nil {
			return fmt.Errorf("Issue supersede: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO otp_codes(code, direction, user_uid, expires_at, used, created_at_ms)
VALUES (?, ?, ?, ?, 0, ?);
`, rec.Code, string(rec.Direction), rec.PersonUID, rec.ExpiresAt, createdMs); err != nil {
			return fmt.Errorf("Issue insert: %w", err)
		}
		return nil
	})
}

// Consume flips the used flag with a conditional UPDATE; the WHERE clause
// repeats the liveness predicate so only one caller can win the row.
func (s *OtpStore) Consume(ctx context.Context, code string, direction store.Direction, now int64) (store.OtpRecord, error) {
	var rec store.OtpRecord

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
SELECT id, user_uid, expires_at
FROM otp_codes
WHERE code = ? AND direction = ? AND used = 0 AND expires_at > ?
ORDER BY id DESC
LIMIT 1;`, code, string(direction), now).Scan(&id, &rec.PersonUID, &rec.ExpiresAt)
		if err == sql.ErrNoRows {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("Consume lookup: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
UPDATE otp_codes
SET used = 1
WHERE id = ? AND used = 0;`, id)
		if err != nil {
			return fmt.Errorf("Consume update: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}

		rec.Code = code
		rec.Direction = direction
		rec.Used = true
		return nil
	})
	if err != nil {
		return store.OtpRecord{}, err
	}
	return rec, nil
}

func (s *OtpStore) PruneBefore(ctx context.Context, cutoff int64) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM otp_codes
WHERE expires_at < ?;`, cutoff)
		if err != nil {
			return fmt.Errorf("PruneBefore: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}
