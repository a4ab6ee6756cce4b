package service

import "errors"

var (
	// ErrCredentialNotFound: no person holds the presented credential token.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrPersonNotFound: unknown person identifier.
	ErrPersonNotFound = errors.New("person not found")

	// ErrInvalidOrExpiredCode deliberately merges "wrong code", "already
	// used" and "expired" so a guessing client cannot tell which.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

	// ErrDeliveryTargetMissing: the person has no contact detail for the
	// requested delivery method.
	ErrDeliveryTargetMissing = errors.New("delivery target not configured")

	// ErrCredentialInUse: the credential token is already bound to another
	// person.
	ErrCredentialInUse = errors.New("credential already in use")
)
