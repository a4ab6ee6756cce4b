package store

import "context"

// OtpRecord is one ephemeral one-time code. ExpiresAt is unix seconds;
// Used is a one-way false-to-true flag.
type OtpRecord struct {
	Code      string
	Direction Direction
	PersonUID string
	ExpiresAt int64
	Used      bool
}

// OtpStore owns the one-time-code lifecycle. Implementations must make
// Issue and Consume atomic with respect to each other: a code superseded
// by a later Issue must never verify, and a code can be consumed at most
// once no matter how many callers race on it.
type OtpStore interface {
	// Issue marks every live code for (rec.PersonUID, rec.Direction) as
	// used and inserts rec, as one atomic operation. A code is live when
	// used is false and now < expiresAt.
	Issue(ctx context.Context, rec OtpRecord, now int64) error

	// Consume finds the live code matching (code, direction) and flips its
	// used flag, compare-and-set style. Returns ErrNotFound when no live
	// match exists; callers must not be able to tell wrong, used and
	// expired apart.
	Consume(ctx context.Context, code string, direction Direction, now int64) (OtpRecord, error)

	// PruneBefore deletes codes whose expiry is before cutoff (unix
	// seconds). Returns the number deleted. Used codes age out the same
	// way once their expiry passes the cutoff.
	PruneBefore(ctx context.Context, cutoff int64) (int64, error)
}
