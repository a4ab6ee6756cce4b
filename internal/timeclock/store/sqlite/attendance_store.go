package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	dbpkg "github.com/clock-in-out/server/internal/db"
	"github.com/clock-in-out/server/internal/timeclock/store"
)

type AttendanceStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAttendanceStore(db *sql.DB, writer *dbpkg.Worker) *AttendanceStore {
	return &AttendanceStore{db: db, writer: writer}
}

func (s *AttendanceStore) Append(ctx context.Context, rec store.AttendanceEventRecord) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO attendance_events(user_uid, direction, channel, timestamp)
VALUES (?, ?, ?, ?);
`, rec.PersonUID, string(rec.Direction), string(rec.Channel), rec.Timestamp); err != nil {
			return fmt.Errorf("Append insert event: %w", err)
		}
		return nil
	})
}

func (s *AttendanceStore) EventsInWindow(ctx context.Context, personUID string, lower, upper int64) ([]store.AttendanceEventRecord, error) {
	// rowid as a secondary key gives insertion order for timestamp ties.
	rows, err := s.db.QueryContext(ctx, `
SELECT user_uid, direction, channel, timestamp
FROM attendance_events
WHERE user_uid = ? AND timestamp >= ? AND timestamp <= ?
ORDER BY timestamp, id;`, personUID, lower, upper)
	if err != nil {
		return nil, fmt.Errorf("EventsInWindow query: %w", err)
	}
	defer rows.Close()

	var out []store.AttendanceEventRecord
	for rows.Next() {
		var rec store.AttendanceEventRecord
		var direction, channel string
		if err := rows.Scan(&rec.PersonUID, &direction, &channel, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("EventsInWindow scan: %w", err)
		}
		rec.Direction = store.Direction(direction)
		rec.Channel = store.Channel(channel)
		out = append(out, rec)
	}
	return out, rows.Err()
}
