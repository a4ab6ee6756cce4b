package store

import "errors"

// ErrNotFound is returned by lookups that resolve nothing. Stores never
// wrap storage-engine "no rows" conditions in anything else.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when a credential key is already bound to a
// different person. Keys are unique across the whole roster.
var ErrDuplicateKey = errors.New("credential key already in use")

// Direction says whether an attendance event is a clock-in or a clock-out.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

// Channel records which authentication path produced an attendance event.
type Channel string

const (
	ChannelCredential Channel = "credential"
	ChannelOTP        Channel = "otp"
	ChannelManual     Channel = "manual"
)
