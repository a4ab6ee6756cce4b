package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/clock-in-out/server/internal/notify"
	"github.com/clock-in-out/server/internal/timeclock/store"
)

// DeliveryMethod selects how an issued code reaches its owner.
type DeliveryMethod string

const (
	DeliveryEmail DeliveryMethod = "email"
	DeliverySMS   DeliveryMethod = "sms"
)

const issuedMessage = "OTP sent successfully"

// notifyTimeout bounds the detached delivery attempt; it must not inherit
// the request context, which dies when the issuing call returns.
const notifyTimeout = 15 * time.Second

// OtpService issues and verifies short-lived numeric codes bound to one
// (person, direction) pair.
type OtpService struct {
	persons  store.PersonStore
	codes    store.OtpStore
	notifier notify.Notifier
	clock    Clock
	logger   *log.Logger

	ttl time.Duration

	// revealCodes returns the literal code from Issue. Development
	// deployments only; threaded from config, never read from the
	// environment here.
	revealCodes bool
}

type OtpConfig struct {
	TTL         time.Duration
	RevealCodes bool
}

func NewOtpService(persons store.PersonStore, codes store.OtpStore, notifier notify.Notifier, clock Clock, cfg OtpConfig, logger *log.Logger) *OtpService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OtpService{
		persons:     persons,
		codes:       codes,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
		ttl:         ttl,
		revealCodes: cfg.RevealCodes,
	}
}

// IssueResult is what the boundary returns for an issuance request. Code
// is empty unless the deployment reveals codes.
type IssueResult struct {
	Message string
	Code    string
}

// Identity is the verified owner of a consumed code.
type Identity struct {
	UID  string
	Name string
}

// Issue generates a fresh 6-digit code for (person, direction), atomically
// superseding any live predecessor, and hands delivery to the notifier on
// a detached goroutine. Delivery failure is logged and never fails the
// issuance: the code stays valid for manual verification.
func (s *OtpService) Issue(ctx context.Context, uid string, direction store.Direction, method DeliveryMethod) (IssueResult, error) {
	uid = strings.TrimSpace(uid)

	p, err := s.persons.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return IssueResult{}, ErrPersonNotFound
		}
		return IssueResult{}, fmt.Errorf("person lookup: %w", err)
	}

	var dest string
	switch method {
	case DeliveryEmail:
		if p.Email == nil || *p.Email == "" {
			return IssueResult{}, ErrDeliveryTargetMissing
		}
		dest = *p.Email
	case DeliverySMS:
		if p.Phone == nil || *p.Phone == "" {
			return IssueResult{}, ErrDeliveryTargetMissing
		}
		dest = *p.Phone
	default:
		return IssueResult{}, fmt.Errorf("unknown delivery method %q", method)
	}

	code, err := randomCode()
	if err != nil {
		return IssueResult{}, fmt.Errorf("generate code: %w", err)
	}

	now := s.clock.Now()
	rec := store.OtpRecord{
		Code:      code,
		Direction: direction,
		PersonUID: p.UID,
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	if err := s.codes.Issue(ctx, rec, now.Unix()); err != nil {
		return IssueResult{}, fmt.Errorf("store code: %w", err)
	}

	go s.deliver(dest, code, direction, method)

	res := IssueResult{Message: issuedMessage}
	if s.revealCodes {
		res.Code = code
	}
	return res, nil
}

func (s *OtpService) deliver(dest, code string, direction store.Direction, method DeliveryMethod) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	var err error
	switch method {
	case DeliveryEmail:
		err = s.notifier.SendCodeEmail(ctx, dest, code, direction)
	case DeliverySMS:
		err = s.notifier.SendCodeSMS(ctx, dest, code, direction)
	}
	if err != nil {
		s.logger.Printf("otp delivery via %s failed: %v", method, err)
	}
}

// Verify consumes the live code matching (code, direction) and returns its
// owner. Wrong, already-used and expired codes are indistinguishable to
// the caller.
func (s *OtpService) Verify(ctx context.Context, code string, direction store.Direction) (Identity, error) {
	rec, err := s.codes.Consume(ctx, code, direction, s.clock.Now().Unix())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, ErrInvalidOrExpiredCode
		}
		return Identity{}, fmt.Errorf("consume code: %w", err)
	}

	p, err := s.persons.FindByUID(ctx, rec.PersonUID)
	if err != nil {
		return Identity{}, fmt.Errorf("code owner lookup: %w", err)
	}
	return Identity{UID: p.UID, Name: p.Name}, nil
}

// randomCode draws a uniform 6-digit code in [100000, 999999], the range
// the rollout has always used.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}
