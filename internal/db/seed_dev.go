package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type seedUser struct {
	uid  string
	name string
	key  any // nil when no credential provisioned yet
}

// SeedDev populates a small demo roster so the kiosk and roster views have
// something to show on a fresh dev database. Safe to run repeatedly.
func SeedDev(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	users := []seedUser{
		{"user001", "John Doe", "NFC-KEY-001"},
		{"user002", "Jane Smith", "NFC-KEY-002"},
		{"user003", "Bob Johnson", "NFC-KEY-003"},
		{"user004", "Alice Williams", "NFC-KEY-004"},
		{"user005", "Charlie Brown", nil}, // waiting for a credential
	}

	for _, u := range users {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO users(uid, name, key, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?);`, u.uid, u.name, u.key, now, now); err != nil {
			return fmt.Errorf("seed user %s: %w", u.uid, err)
		}
	}

	// Wipe and rebuild the demo schedule so edits to the seed data below
	// take effect on restart.
	if _, err := db.ExecContext(ctx, `
DELETE FROM user_schedule
WHERE user_uid IN ('user001', 'user002', 'user003', 'user004');`); err != nil {
		return fmt.Errorf("seed clear schedule: %w", err)
	}

	addEntry := func(uid string, day, hour int, room string) error {
		_, err := db.ExecContext(ctx, `
INSERT INTO user_schedule(user_uid, day, hour, room)
VALUES (?, ?, ?, ?);`, uid, day, hour, room)
		if err != nil {
			return fmt.Errorf("seed schedule %s d%d h%d: %w", uid, day, hour, err)
		}
		return nil
	}

	// Full time, Monday-Friday.
	for day := 0; day < 5; day++ {
		for hour := 0; hour < 8; hour++ {
			if err := addEntry("user001", day, hour, "Room 101"); err != nil {
				return err
			}
			if err := addEntry("user002", day, hour, "Room 102"); err != nil {
				return err
			}
		}
	}

	// Part time: Mon/Wed/Fri mornings.
	for _, day := range []int{0, 2, 4} {
		for hour := 0; hour < 4; hour++ {
			if err := addEntry("user003", day, hour, "Room 103"); err != nil {
				return err
			}
		}
	}

	// Part time: Tue/Thu afternoons.
	for _, day := range []int{1, 3} {
		for hour := 4; hour < 8; hour++ {
			if err := addEntry("user004", day, hour, "Room 104"); err != nil {
				return err
			}
		}
	}

	return nil
}
