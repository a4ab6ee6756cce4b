package store

import "context"

// PersonRecord is one identity on the roster. Key, Email and Phone are
// nil until provisioned.
type PersonRecord struct {
	UID   string
	Name  string
	Key   *string
	Email *string
	Phone *string
}

// PersonStore resolves identities for every authentication channel.
type PersonStore interface {
	Create(ctx context.Context, rec PersonRecord) error

	// FindByUID returns ErrNotFound for unknown identifiers.
	FindByUID(ctx context.Context, uid string) (PersonRecord, error)

	// FindByKey is an exact match on the physical credential token.
	FindByKey(ctx context.Context, key string) (PersonRecord, error)

	// ListWithoutKey returns persons with no credential provisioned yet.
	ListWithoutKey(ctx context.Context) ([]PersonRecord, error)

	// AssignKey binds a credential token to a person. Returns ErrNotFound
	// for an unknown uid and ErrDuplicateKey if another person already
	// holds the token.
	AssignKey(ctx context.Context, uid, key string) error
}
