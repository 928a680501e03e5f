package auth

import (
	"context"
)

// Store looks up and provisions credentials. FindByUsername returns
// sentinel.ErrNotFound (possibly wrapped) for unknown users; the verifier
// makes sure that fact never changes the externally visible signal.
type Store interface {
	FindByUsername(ctx context.Context, username string) (Credential, error)
	// Upsert creates or replaces a credential. Only the provisioning CLI
	// calls this; the request pipeline never mutates credentials.
	Upsert(ctx context.Context, cred Credential) error
}
