package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clock-in-out/server/internal/timeclock/service"
	"github.com/clock-in-out/server/internal/timeclock/store"
	"github.com/clock-in-out/server/internal/timeclock/store/memory"
	"github.com/clock-in-out/server/internal/timeclock/types"
)

// newTestAuthService wires an AuthService over in-memory stores, returning
// the pieces tests need to seed people and inspect recorded events.
func newTestAuthService(t *testing.T) (*service.AuthService, *service.OtpService, *memory.PersonStore, *memory.AttendanceStore, *fakeClock) {
	t.Helper()

	persons := memory.NewPersonStore()
	attendance := memory.NewAttendanceStore()
	otps := memory.NewOtpStore()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	otpSvc := service.NewOtpService(persons, otps, newCaptureNotifier(), clock, service.OtpConfig{
		TTL:         10 * time.Minute,
		RevealCodes: true,
	}, silentLogger())
	authSvc := service.NewAuthService(persons, attendance, otpSvc, clock)
	return authSvc, otpSvc, persons, attendance, clock
}

func seedPerson(t *testing.T, persons *memory.PersonStore, rec store.PersonRecord) {
	t.Helper()
	if err := persons.Create(context.Background(), rec); err != nil {
		t.Fatalf("seed person %s: %v", rec.UID, err)
	}
}

func TestClockByCredential_Entry_RecordsEventAndGreets(t *testing.T) {
	svc, _, persons, attendance, clock := newTestAuthService(t)
	seedPerson(t, persons, store.PersonRecord{UID: "user001", Name: "John Doe", Key: strptr("NFC-KEY-001")})

	resp, err := svc.ClockByCredential(context.Background(), "NFC-KEY-001", store.DirectionEntry)
	if err != nil {
		t.Fatalf("ClockByCredential: %v", err)
	}
	if resp.Status != types.StatusOK {
		t.Errorf("expected status OK, got %q", resp.Status)
	}
	if resp.Msg != "Entrada - John Doe" {
		t.Errorf("expected greeting, got %q", resp.Msg)
	}

	events := attendance.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.PersonUID != "user001" {
		t.Errorf("expected user001, got %q", ev.PersonUID)
	}
	if ev.Direction != store.DirectionEntry {
		t.Errorf("expected entry, got %q", ev.Direction)
	}
	if ev.Channel != store.ChannelCredential {
		t.Errorf("expected credential channel, got %q", ev.Channel)
	}
	if ev.Timestamp != clock.Now().Unix() {
		t.Errorf("expected timestamp %d, got %d", clock.Now().Unix(), ev.Timestamp)
	}
}

func TestClockByCredential_SameKeyBothDirections(t *testing.T) {
	svc, _, persons, attendance, _ := newTestAuthService(t)
	seedPerson(t, persons, store.PersonRecord{UID: "user001", Name: "John Doe", Key: strptr("NFC-KEY-001")})

	in, err := svc.ClockByCredential(context.Background(), "NFC-KEY-001", store.DirectionEntry)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	out, err := svc.ClockByCredential(context.Background(), "NFC-KEY-001", store.DirectionExit)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}

	if in.Msg != "Entrada - John Doe" {
		t.Errorf("entry msg = %q", in.Msg)
	}
	if out.Msg != "Salida - John Doe" {
		t.Errorf("exit msg = %q", out.Msg)
	}
	if got := len(attendance.Events()); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
}

func TestClockByCredential_UnknownKey_FixedMessageNoEvent(t *testing.T) {
	svc, _, _, attendance, _ := newTestAuthService(t)

	resp, err := svc.ClockByCredential(context.Background(), "NOPE", store.DirectionEntry)
	if !errors.Is(err, service.ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got %v", err)
	}
	if resp.Status != types.StatusKO {
		t.Errorf("expected status KO, got %q", resp.Status)
	}
	if resp.Msg != "Error en la entrada" {
		t.Errorf("expected fixed entry message, got %q", resp.Msg)
	}
	if got := len(attendance.Events()); got != 0 {
		t.Errorf("expected 0 events, got %d", got)
	}
}

func TestClockByManualID_UnknownUID_FixedMessagePerDirection(t *testing.T) {
	svc, _, _, attendance, _ := newTestAuthService(t)

	in, err := svc.ClockByManualID(context.Background(), "ghost", store.DirectionEntry)
	if !errors.Is(err, service.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound, got %v", err)
	}
	if in.Status != types.StatusKO || in.Msg != "Error en la entrada" {
		t.Errorf("unexpected entry response: %+v", in)
	}

	out, _ := svc.ClockByManualID(context.Background(), "ghost", store.DirectionExit)
	if out.Status != types.StatusKO || out.Msg != "Error en la salida" {
		t.Errorf("unexpected exit response: %+v", out)
	}

	if got := len(attendance.Events()); got != 0 {
		t.Errorf("expected 0 events, got %d", got)
	}
}

func TestClockByManualID_Known_RecordsManualChannel(t *testing.T) {
	svc, _, persons, attendance, _ := newTestAuthService(t)
	seedPerson(t, persons, store.PersonRecord{UID: "user002", Name: "Jane Smith"})

	resp, err := svc.ClockByManualID(context.Background(), "user002", store.DirectionExit)
	if err != nil {
		t.Fatalf("ClockByManualID: %v", err)
	}
	if resp.Msg != "Salida - Jane Smith" {
		t.Errorf("unexpected msg %q", resp.Msg)
	}

	events := attendance.Events()
	if len(events) != 1 || events[0].Channel != store.ChannelManual {
		t.Fatalf("expected 1 manual-channel event, got %+v", events)
	}
}

func TestClockByOTP_ValidCode_RecordsOtpChannel(t *testing.T) {
	svc, otpSvc, persons, attendance, _ := newTestAuthService(t)
	seedPerson(t, persons, store.PersonRecord{UID: "user003", Name: "Bob Johnson", Email: strptr("bob@example.com")})

	issued, err := otpSvc.Issue(context.Background(), "user003", store.DirectionEntry, service.DeliveryEmail)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	resp, err := svc.ClockByOTP(context.Background(), issued.Code, store.DirectionEntry)
	if err != nil {
		t.Fatalf("ClockByOTP: %v", err)
	}
	if resp.Status != types.StatusOK || resp.Msg != "Entrada - Bob Johnson" {
		t.Errorf("unexpected response: %+v", resp)
	}

	events := attendance.Events()
	if len(events) != 1 || events[0].Channel != store.ChannelOTP {
		t.Fatalf("expected 1 otp-channel event, got %+v", events)
	}
}

func TestClockByOTP_BadCode_FixedMessageNoEvent(t *testing.T) {
	svc, _, _, attendance, _ := newTestAuthService(t)

	resp, err := svc.ClockByOTP(context.Background(), "123456", store.DirectionExit)
	if !errors.Is(err, service.ErrInvalidOrExpiredCode) {
		t.Errorf("expected ErrInvalidOrExpiredCode, got %v", err)
	}
	if resp.Status != types.StatusKO || resp.Msg != "Error en la salida" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if got := len(attendance.Events()); got != 0 {
		t.Errorf("expected 0 events, got %d", got)
	}
}
