package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	dErrors "attrisk/pkg/domain-errors"
)

func seedStore(t *testing.T, username, password string) *InMemoryStore {
	t.Helper()
	store := NewInMemoryStore()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now()
	if err := store.Upsert(context.Background(), Credential{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	return store
}

func TestStoreVerifierAcceptsValidCredentials(t *testing.T) {
	store := seedStore(t, "admin", "s3cret")
	v, err := NewStoreVerifier(store)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	if err := v.Authenticate(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("expected authorized, got %v", err)
	}
}

func TestStoreVerifierSymmetricFailureSignal(t *testing.T) {
	store := seedStore(t, "admin", "s3cret")
	v, err := NewStoreVerifier(store)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	ctx := context.Background()

	wrongPassword := v.Authenticate(ctx, "admin", "nope")
	unknownUser := v.Authenticate(ctx, "ghost", "anything")

	if wrongPassword == nil || unknownUser == nil {
		t.Fatalf("expected both attempts to fail")
	}
	// Wrong password and unknown user must be indistinguishable.
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials from both paths: %v / %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("error text differs between paths: %q vs %q", wrongPassword, unknownUser)
	}
	if dErrors.CodeOf(wrongPassword) != dErrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %s", dErrors.CodeOf(wrongPassword))
	}
}

func TestStoreVerifierWrapsLookupFailures(t *testing.T) {
	v, err := NewStoreVerifier(failingStore{})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	authErr := v.Authenticate(context.Background(), "admin", "s3cret")
	if dErrors.CodeOf(authErr) != dErrors.CodeInternal {
		t.Fatalf("store outage must surface as internal, got %v", authErr)
	}
	if errors.Is(authErr, ErrInvalidCredentials) {
		t.Fatalf("store outage must not masquerade as bad credentials")
	}
}

type failingStore struct{}

func (failingStore) FindByUsername(context.Context, string) (Credential, error) {
	return Credential{}, errors.New("connection refused")
}

func (failingStore) Upsert(context.Context, Credential) error {
	return errors.New("connection refused")
}

func TestFixedVerifier(t *testing.T) {
	v, err := NewFixedVerifier("admin", "s3cret")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	ctx := context.Background()

	if err := v.Authenticate(ctx, "admin", "s3cret"); err != nil {
		t.Fatalf("expected authorized, got %v", err)
	}

	wrongPassword := v.Authenticate(ctx, "admin", "nope")
	wrongUser := v.Authenticate(ctx, "root", "s3cret")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(wrongUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials from both paths")
	}
	if wrongPassword.Error() != wrongUser.Error() {
		t.Fatalf("error text differs between paths")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected empty password to be rejected")
	}
}
