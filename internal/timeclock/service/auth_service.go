package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clock-in-out/server/internal/timeclock/store"
	"github.com/clock-in-out/server/internal/timeclock/types"
)

// AuthService is the single choke point turning a validated identity plus
// direction into one attendance event.
//
// Every Clock* method is total from the transport's perspective: the
// returned AuthResponse is always usable as-is (the reader hardware has no
// error-recovery UI), while the returned error carries the typed cause for
// logging and internal callers. A non-nil error always pairs with a KO
// response and means no event was recorded.
type AuthService struct {
	persons    store.PersonStore
	attendance store.AttendanceStore
	otp        *OtpService
	clock      Clock
}

func NewAuthService(persons store.PersonStore, attendance store.AttendanceStore, otp *OtpService, clock Clock) *AuthService {
	return &AuthService{persons: persons, attendance: attendance, otp: otp, clock: clock}
}

// ClockByCredential resolves the person holding the physical credential
// token and records an event on the credential channel.
func (s *AuthService) ClockByCredential(ctx context.Context, key string, direction store.Direction) (types.AuthResponse, error) {
	key = strings.TrimSpace(key)

	p, err := s.persons.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return failure(direction), ErrCredentialNotFound
		}
		return failure(direction), fmt.Errorf("credential lookup: %w", err)
	}

	if err := s.record(ctx, p.UID, direction, store.ChannelCredential); err != nil {
		return failure(direction), err
	}
	return success(direction, p.Name), nil
}

// ClockByManualID records an event for an identifier typed at the kiosk.
func (s *AuthService) ClockByManualID(ctx context.Context, uid string, direction store.Direction) (types.AuthResponse, error) {
	uid = strings.TrimSpace(uid)

	p, err := s.persons.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return failure(direction), ErrPersonNotFound
		}
		return failure(direction), fmt.Errorf("person lookup: %w", err)
	}

	if err := s.record(ctx, p.UID, direction, store.ChannelManual); err != nil {
		return failure(direction), err
	}
	return success(direction, p.Name), nil
}

// ClockByOTP converts a one-time code into a verified identity, then
// records an event on the OTP channel.
func (s *AuthService) ClockByOTP(ctx context.Context, code string, direction store.Direction) (types.AuthResponse, error) {
	identity, err := s.otp.Verify(ctx, strings.TrimSpace(code), direction)
	if err != nil {
		return failure(direction), err
	}

	if err := s.record(ctx, identity.UID, direction, store.ChannelOTP); err != nil {
		return failure(direction), err
	}
	return success(direction, identity.Name), nil
}

func (s *AuthService) record(ctx context.Context, uid string, direction store.Direction, channel store.Channel) error {
	rec := store.AttendanceEventRecord{
		PersonUID: uid,
		Direction: direction,
		Channel:   channel,
		Timestamp: s.clock.Now().Unix(),
	}
	if err := s.attendance.Append(ctx, rec); err != nil {
		return fmt.Errorf("append attendance event: %w", err)
	}
	return nil
}

func success(direction store.Direction, name string) types.AuthResponse {
	msg := "Entrada - " + name
	if direction == store.DirectionExit {
		msg = "Salida - " + name
	}
	return types.AuthResponse{Status: types.StatusOK, Msg: msg}
}

// failure returns the fixed per-direction message shown on the terminal.
// It never includes the cause: that belongs in the error, not on a kiosk
// screen.
func failure(direction store.Direction) types.AuthResponse {
	msg := "Error en la entrada"
	if direction == store.DirectionExit {
		msg = "Error en la salida"
	}
	return types.AuthResponse{Status: types.StatusKO, Msg: msg}
}
