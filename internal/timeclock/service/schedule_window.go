package service

import (
	"fmt"
	"strings"
	"time"
)

// NoSlot means the instant falls outside every configured hour-slot.
const NoSlot = -1

// ClockTime is a wall-clock time of day, independent of date.
type ClockTime struct {
	Hour   int
	Minute int
}

func (t ClockTime) minutes() int { return t.Hour*60 + t.Minute }

// On materializes the clock time as a timestamp on ref's date, in ref's
// location.
func (t ClockTime) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// ClockRange is a half-open [Start, End) span of wall-clock time.
type ClockRange struct {
	Start ClockTime
	End   ClockTime
}

// Contains reports whether ref's clock time falls inside the range.
func (r ClockRange) Contains(ref time.Time) bool {
	m := ref.Hour()*60 + ref.Minute()
	return m >= r.Start.minutes() && m < r.End.minutes()
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	var t ClockTime
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &t.Hour, &t.Minute); err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", s)
	}
	return t, nil
}

// ParseClockRange parses "HH:MM-HH:MM".
func ParseClockRange(s string) (ClockRange, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return ClockRange{}, fmt.Errorf("parse clock range %q: want HH:MM-HH:MM", s)
	}
	start, err := ParseClockTime(parts[0])
	if err != nil {
		return ClockRange{}, err
	}
	end, err := ParseClockTime(parts[1])
	if err != nil {
		return ClockRange{}, err
	}
	if end.minutes() <= start.minutes() {
		return ClockRange{}, fmt.Errorf("clock range %q is empty or inverted", s)
	}
	return ClockRange{Start: start, End: end}, nil
}

// ScheduleConfig holds every constant the schedule-window engine needs.
// Nothing here is baked into logic; it all arrives via configuration.
type ScheduleConfig struct {
	// ShiftOffset shifts "now" backwards so late-night shifts attribute to
	// the preceding operational day.
	ShiftOffset time.Duration

	// SundayWrap maps Sunday to day index 6. When false, Sunday yields -1,
	// which matches no schedule row.
	SundayWrap bool

	// Morning bounds the morning half-shift; everything outside is night.
	Morning ClockRange

	// Night bounds the night half-shift's presence window.
	Night ClockRange

	// Slots is the ordered table of disjoint hour-slot ranges.
	Slots []ClockRange

	// ExcludedRooms don't count toward presence.
	ExcludedRooms []string
}

// ParseScheduleConfig builds a ScheduleConfig from its string form as it
// appears in the environment.
func ParseScheduleConfig(offsetHours int, sundayWrap bool, morning, night string, slots, excludedRooms []string) (ScheduleConfig, error) {
	cfg := ScheduleConfig{
		ShiftOffset:   time.Duration(offsetHours) * time.Hour,
		SundayWrap:    sundayWrap,
		ExcludedRooms: excludedRooms,
	}

	var err error
	if cfg.Morning, err = ParseClockRange(morning); err != nil {
		return ScheduleConfig{}, fmt.Errorf("morning window: %w", err)
	}
	if cfg.Night, err = ParseClockRange(night); err != nil {
		return ScheduleConfig{}, fmt.Errorf("night window: %w", err)
	}
	for _, s := range slots {
		r, err := ParseClockRange(s)
		if err != nil {
			return ScheduleConfig{}, fmt.Errorf("hour slot: %w", err)
		}
		cfg.Slots = append(cfg.Slots, r)
	}
	return cfg, nil
}

// mondayIndex converts Go's Sunday-indexed weekday to the Monday-indexed
// 0-6 scheme the schedule table uses. The wrap parameter decides the
// Sunday policy: wrapped, Sunday becomes 6; unwrapped it becomes -1 and
// matches nothing.
func mondayIndex(w time.Weekday, wrap bool) int {
	idx := int(w) - 1
	if idx < 0 && wrap {
		idx = 6
	}
	return idx
}

// slotIndex scans the ordered slot table and returns the index of the
// range containing ref's clock time, or NoSlot.
func (c ScheduleConfig) slotIndex(ref time.Time) int {
	for i, r := range c.Slots {
		if r.Contains(ref) {
			return i
		}
	}
	return NoSlot
}
