package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "attrisk/pkg/domain-errors"
	"attrisk/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is the single externally visible authentication
// failure. It never distinguishes unknown user from wrong password.
var ErrInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")

// Verifier authenticates a username/password pair.
type Verifier interface {
	Authenticate(ctx context.Context, username, password string) error
}

// StoreVerifier checks credentials against the credential store.
//
// Timing safety: the bcrypt comparison runs on every attempt. For unknown
// users it runs against a dummy hash generated at startup, so the work
// factor is paid on both paths and response time does not reveal whether
// the username exists.
type StoreVerifier struct {
	store     Store
	dummyHash []byte
}

// NewStoreVerifier builds a verifier over the credential store.
func NewStoreVerifier(store Store) (*StoreVerifier, error) {
	// The dummy plaintext is random per process; its compare result is
	// always discarded for unknown users.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StoreVerifier{store: store, dummyHash: dummy}, nil
}

func (v *StoreVerifier) Authenticate(ctx context.Context, username, password string) error {
	cred, err := v.store.FindByUsername(ctx, username)
	known := err == nil
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "credential lookup failed")
	}

	hash := v.dummyHash
	if known {
		hash = []byte(cred.PasswordHash)
	}
	match := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil

	if !known || !match {
		return ErrInvalidCredentials
	}
	return nil
}

// FixedVerifier compares against a single configured identity, for
// deployments without a credential table. The username comparison is
// constant time in the compared content; the password check is bcrypt
// against a hash computed once at startup.
type FixedVerifier struct {
	username     []byte
	passwordHash []byte
}

// NewFixedVerifier hashes the configured password once and keeps only the hash.
func NewFixedVerifier(username, password string) (*FixedVerifier, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &FixedVerifier{username: []byte(username), passwordHash: []byte(hash)}, nil
}

func (v *FixedVerifier) Authenticate(_ context.Context, username, password string) error {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), v.username) == 1
	// bcrypt runs regardless of the username result so both checks always
	// cost the same.
	passwordOK := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil

	if !usernameOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}
