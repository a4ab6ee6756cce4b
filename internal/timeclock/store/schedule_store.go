package store

import "context"

// ScheduleEntryRecord is one (person, day, hour-slot, room) assignment.
// Day is Monday-indexed 0-6; Hour is an index into the configured
// hour-slot table. Entries are seeded, never edited by the engine.
type ScheduleEntryRecord struct {
	PersonUID string
	Day       int
	Hour      int
	Room      string
}

// ScheduleStore answers roster-membership queries.
type ScheduleStore interface {
	Add(ctx context.Context, rec ScheduleEntryRecord) error

	// PersonsScheduledAt returns every person holding a schedule entry at
	// (day, hour) whose room is not in excludeRooms. Each person appears
	// at most once regardless of how many matching entries they hold.
	PersonsScheduledAt(ctx context.Context, day, hour int, excludeRooms []string) ([]PersonRecord, error)
}
