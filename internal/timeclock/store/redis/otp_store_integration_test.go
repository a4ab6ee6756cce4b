package redis_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clock-in-out/server/internal/timeclock/store"
	redisstore "github.com/clock-in-out/server/internal/timeclock/store/redis"
)

// These tests need a live Redis. Point CLOCKIN_REDIS_TEST_URL at one
// (e.g. redis://localhost:6379/15) to run them; they are skipped
// otherwise. Keys are namespaced per test run so a shared instance
// stays usable.
func newTestStore(t *testing.T) *redisstore.OtpStore {
	t.Helper()

	url := os.Getenv("CLOCKIN_REDIS_TEST_URL")
	if url == "" {
		t.Skip("CLOCKIN_REDIS_TEST_URL not set; skipping redis integration tests")
	}

	opts, err := goredis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := goredis.NewClient(opts)
	t.Cleanup(func() { client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	return redisstore.NewOtpStore(client)
}

func testUID(t *testing.T) string {
	return fmt.Sprintf("it-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestIntegration_IssueConsumeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	now := time.Now().Unix()
	rec := store.OtpRecord{Code: "123456", Direction: store.DirectionEntry, PersonUID: uid, ExpiresAt: now + 60}
	if err := s.Issue(ctx, rec, now); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := s.Consume(ctx, "123456", store.DirectionEntry, now)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if got.PersonUID != uid || !got.Used {
		t.Errorf("unexpected record: %+v", got)
	}

	if _, err := s.Consume(ctx, "123456", store.DirectionEntry, now); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Consume: expected ErrNotFound, got %v", err)
	}
}

func TestIntegration_IssueSupersedesLiveCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	now := time.Now().Unix()
	first := store.OtpRecord{Code: "111111", Direction: store.DirectionEntry, PersonUID: uid, ExpiresAt: now + 60}
	second := store.OtpRecord{Code: "222222", Direction: store.DirectionEntry, PersonUID: uid, ExpiresAt: now + 60}
	if err := s.Issue(ctx, first, now); err != nil {
		t.Fatalf("Issue first: %v", err)
	}
	if err := s.Issue(ctx, second, now); err != nil {
		t.Fatalf("Issue second: %v", err)
	}

	if _, err := s.Consume(ctx, "111111", store.DirectionEntry, now); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("superseded code: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Consume(ctx, "222222", store.DirectionEntry, now); err != nil {
		t.Errorf("latest code: %v", err)
	}
}

func TestIntegration_DirectionMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	now := time.Now().Unix()
	rec := store.OtpRecord{Code: "123456", Direction: store.DirectionEntry, PersonUID: uid, ExpiresAt: now + 60}
	if err := s.Issue(ctx, rec, now); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := s.Consume(ctx, "123456", store.DirectionExit, now); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("wrong-direction consume: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Consume(ctx, "123456", store.DirectionEntry, now); err != nil {
		t.Errorf("matching consume after mismatch: %v", err)
	}
}

func TestIntegration_RejectsPastExpiry(t *testing.T) {
	s := newTestStore(t)
	uid := testUID(t)

	now := time.Now().Unix()
	rec := store.OtpRecord{Code: "123456", Direction: store.DirectionEntry, PersonUID: uid, ExpiresAt: now}
	if err := s.Issue(context.Background(), rec, now); err == nil {
		t.Error("expected error issuing an already-expired code")
	}
}
