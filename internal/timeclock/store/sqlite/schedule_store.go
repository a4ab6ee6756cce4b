package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	dbpkg "github.com/clock-in-out/server/internal/db"
	"github.com/clock-in-out/server/internal/timeclock/store"
)

type ScheduleStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewScheduleStore(db *sql.DB, writer *dbpkg.Worker) *ScheduleStore {
	return &ScheduleStore{db: db, writer: writer}
}

func (s *ScheduleStore) Add(ctx context.Context, rec store.ScheduleEntryRecord) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO user_schedule(user_uid, day, hour, room)
VALUES (?, ?, ?, ?);
`, rec.PersonUID, rec.Day, rec.Hour, rec.Room); err != nil {
			return fmt.Errorf("Add schedule entry: %w", err)
		}
		return nil
	})
}

func (s *ScheduleStore) PersonsScheduledAt(ctx context.Context, day, hour int, excludeRooms []string) ([]store.PersonRecord, error) {
	query := `
SELECT DISTINCT u.uid, u.name, u.key, u.email, u.phone
FROM users u
JOIN user_schedule sch ON sch.user_uid = u.uid
WHERE sch.day = ? AND sch.hour = ?`

	args := []any{day, hour}
	if len(excludeRooms) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(excludeRooms)), ", ")
		query += " AND sch.room NOT IN (" + placeholders + ")"
		for _, r := range excludeRooms {
			args = append(args, r)
		}
	}
	query += "\nORDER BY u.uid;"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PersonsScheduledAt query: %w", err)
	}
	defer rows.Close()

	var out []store.PersonRecord
	for rows.Next() {
		rec, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("PersonsScheduledAt scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
