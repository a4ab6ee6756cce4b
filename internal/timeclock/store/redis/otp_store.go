// Package redis backs the one-time-code lifecycle with Redis so multiple
// server instances can share OTP state. Single-use consumption relies on
// GETDEL being atomic; expiry rides on key TTLs.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

type OtpStore struct {
	client *goredis.Client
}

func NewOtpStore(client *goredis.Client) *OtpStore {
	return &OtpStore{client: client}
}

// codeValue is the JSON payload stored under the code key.
type codeValue struct {
	PersonUID string `json:"uid"`
	ExpiresAt int64  `json:"exp"`
}

func codeKey(direction store.Direction, code string) string {
	return fmt.Sprintf("otp:%s:%s", direction, code)
}

func activeKey(personUID string, direction store.Direction) string {
	return fmt.Sprintf("otp:active:%s:%s", personUID, direction)
}

func (s *OtpStore) Issue(ctx context.Context, rec store.OtpRecord, now int64) error {
	ttl := time.Duration(rec.ExpiresAt-now) * time.Second
	if ttl <= 0 {
		return fmt.Errorf("issue otp: expiry not in the future")
	}

	// Supersede: drop the previous live code for this (person, direction)
	// before publishing the new one. GETDEL removes the pointer atomically,
	// so a racing Consume either already won the old code or finds nothing.
	prev, err := s.client.GetDel(ctx, activeKey(rec.PersonUID, rec.Direction)).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("issue otp: clear active pointer: %w", err)
	}
	if prev != "" {
		if err := s.client.Del(ctx, codeKey(rec.Direction, prev)).Err(); err != nil {
			return fmt.Errorf("issue otp: delete superseded code: %w", err)
		}
	}

	payload, err := json.Marshal(codeValue{PersonUID: rec.PersonUID, ExpiresAt: rec.ExpiresAt})
	if err != nil {
		return fmt.Errorf("issue otp: marshal: %w", err)
	}
	if err := s.client.Set(ctx, codeKey(rec.Direction, rec.Code), payload, ttl).Err(); err != nil {
		return fmt.Errorf("issue otp: store code: %w", err)
	}
	if err := s.client.Set(ctx, activeKey(rec.PersonUID, rec.Direction), rec.Code, ttl).Err(); err != nil {
		return fmt.Errorf("issue otp: store active pointer: %w", err)
	}
	return nil
}

func (s *OtpStore) Consume(ctx context.Context, code string, direction store.Direction, now int64) (store.OtpRecord, error) {
	raw, err := s.client.GetDel(ctx, codeKey(direction, code)).Result()
	if errors.Is(err, goredis.Nil) {
		return store.OtpRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.OtpRecord{}, fmt.Errorf("consume otp: %w", err)
	}

	var val codeValue
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return store.OtpRecord{}, fmt.Errorf("consume otp: decode: %w", err)
	}
	// The TTL should have evicted expired codes already; the check guards
	// against clock drift between Redis and the application.
	if now >= val.ExpiresAt {
		return store.OtpRecord{}, store.ErrNotFound
	}

	// Best-effort: drop the active pointer if it still names this code.
	current, err := s.client.Get(ctx, activeKey(val.PersonUID, direction)).Result()
	if err == nil && current == code {
		_ = s.client.Del(ctx, activeKey(val.PersonUID, direction)).Err()
	}

	return store.OtpRecord{
		Code:      code,
		Direction: direction,
		PersonUID: val.PersonUID,
		ExpiresAt: val.ExpiresAt,
		Used:      true,
	}, nil
}

// PruneBefore is a no-op: Redis evicts codes via TTL.
func (s *OtpStore) PruneBefore(context.Context, int64) (int64, error) {
	return 0, nil
}
