package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/clock-in-out/server/internal/timeclock/service"
	"github.com/clock-in-out/server/internal/timeclock/store"
	"github.com/clock-in-out/server/internal/timeclock/store/memory"
)

func TestOtpPruner_DisabledWithZeroRetention(t *testing.T) {
	codes := memory.NewOtpStore()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	seedCode(t, codes, "111111", clock.Now().Add(-30*24*time.Hour))

	p := service.NewOtpPruner(codes, clock, service.PrunerConfig{RetentionDays: 0}, silentLogger())
	p.Start(context.Background())
	p.Stop()

	if got := len(codes.Codes()); got != 1 {
		t.Errorf("disabled pruner must not delete; got %d codes", got)
	}
}

func TestOtpPruner_RemovesAgedCodesOnStartup(t *testing.T) {
	codes := memory.NewOtpStore()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	// One code aged well past retention, one recent.
	seedCode(t, codes, "111111", clock.Now().Add(-10*24*time.Hour))
	seedCode(t, codes, "222222", clock.Now().Add(-time.Hour))

	p := service.NewOtpPruner(codes, clock, service.PrunerConfig{RetentionDays: 7, IntervalHours: 6}, silentLogger())
	p.Start(context.Background())
	p.Stop()

	remaining := codes.Codes()
	if len(remaining) != 1 || remaining[0].Code != "222222" {
		t.Errorf("expected only the recent code to survive, got %+v", remaining)
	}
}

func TestOtpPruner_StopAfterContextCancel(t *testing.T) {
	codes := memory.NewOtpStore()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	p := service.NewOtpPruner(codes, clock, service.PrunerConfig{RetentionDays: 7}, silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()
	p.Stop()
}

func seedCode(t *testing.T, codes *memory.OtpStore, code string, expiresAt time.Time) {
	t.Helper()
	rec := store.OtpRecord{
		Code:      code,
		Direction: store.DirectionEntry,
		PersonUID: "user001",
		ExpiresAt: expiresAt.Unix(),
		Used:      true,
	}
	if err := codes.Issue(context.Background(), rec, expiresAt.Add(-10*time.Minute).Unix()); err != nil {
		t.Fatalf("seed code %s: %v", code, err)
	}
}
