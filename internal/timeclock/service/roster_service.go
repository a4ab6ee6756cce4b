package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/clock-in-out/server/internal/timeclock/store"
	"github.com/clock-in-out/server/internal/timeclock/types"
)

// rosterQueryLimit caps concurrent per-person attendance lookups.
const rosterQueryLimit = 8

// RosterService is the schedule-window engine: given the current instant
// it resolves who is scheduled right now and classifies each of them
// present or absent from the attendance log. Pure read path; the only
// failures it produces are propagated storage errors.
type RosterService struct {
	schedule   store.ScheduleStore
	attendance store.AttendanceStore
	clock      Clock
	cfg        ScheduleConfig
}

func NewRosterService(schedule store.ScheduleStore, attendance store.AttendanceStore, clock Clock, cfg ScheduleConfig) *RosterService {
	return &RosterService{schedule: schedule, attendance: attendance, clock: clock, cfg: cfg}
}

// Roster returns the scheduled roster for the active (day, hour-slot),
// annotated with presence. Outside operating hours the roster is empty;
// that is a valid answer, not an error.
func (s *RosterService) Roster(ctx context.Context) (types.RosterResponse, error) {
	now := s.clock.Now()
	resp := types.RosterResponse{Users: []types.RosterUser{}, Timestamp: now.Unix()}

	shifted := now.Add(-s.cfg.ShiftOffset)
	day := mondayIndex(shifted.Weekday(), s.cfg.SundayWrap)
	slot := s.cfg.slotIndex(shifted)
	if day < 0 || slot == NoSlot {
		return resp, nil
	}

	half := s.cfg.Night
	if s.cfg.Morning.Contains(shifted) {
		half = s.cfg.Morning
	}
	// Presence bounds live on the real current date: the shift offset only
	// decides which day/slot applies, not when today's half began.
	lower := half.Start.On(now).Unix()
	upper := half.End.On(now).Unix()

	scheduled, err := s.schedule.PersonsScheduledAt(ctx, day, slot, s.cfg.ExcludedRooms)
	if err != nil {
		return types.RosterResponse{}, fmt.Errorf("resolve scheduled roster: %w", err)
	}

	users := make([]types.RosterUser, len(scheduled))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterQueryLimit)
	for i, p := range scheduled {
		g.Go(func() error {
			events, err := s.attendance.EventsInWindow(gctx, p.UID, lower, upper)
			if err != nil {
				return fmt.Errorf("attendance for %s: %w", p.UID, err)
			}
			users[i] = types.RosterUser{
				UID:     p.UID,
				Name:    p.Name,
				Present: classify(events),
				Events:  toWireEvents(events),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.RosterResponse{}, err
	}

	resp.Users = users
	return resp, nil
}

// classify: present iff the most recent in-window event is an entry.
func classify(events []store.AttendanceEventRecord) bool {
	if len(events) == 0 {
		return false
	}
	return events[len(events)-1].Direction == store.DirectionEntry
}

func toWireEvents(events []store.AttendanceEventRecord) []types.AttendanceEvent {
	out := make([]types.AttendanceEvent, len(events))
	for i, ev := range events {
		out[i] = types.AttendanceEvent{
			Direction: string(ev.Direction),
			Channel:   string(ev.Channel),
			Timestamp: ev.Timestamp,
		}
	}
	return out
}
