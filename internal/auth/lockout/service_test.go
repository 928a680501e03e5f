package lockout

import (
	"context"
	"testing"
	"time"
)

func TestLockoutAfterMaxAttempts(t *testing.T) {
	store := NewMemoryStore()
	svc, err := New(store, WithConfig(Config{MaxAttempts: 3, Window: time.Minute}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		locked, err := svc.RecordFailure(ctx, "admin", "10.0.0.1")
		if err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
		if locked {
			t.Fatalf("locked too early at attempt %d", i)
		}
	}

	locked, err := svc.RecordFailure(ctx, "admin", "10.0.0.1")
	if err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if !locked {
		t.Fatalf("expected lock on attempt 3")
	}

	allowed, err := svc.Allowed(ctx, "admin", "10.0.0.1")
	if err != nil {
		t.Fatalf("allowed: %v", err)
	}
	if allowed {
		t.Fatalf("locked identifier must not be allowed")
	}
}

func TestLockoutScopedToUsernameAndIP(t *testing.T) {
	svc, err := New(NewMemoryStore(), WithConfig(Config{MaxAttempts: 1, Window: time.Minute}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.RecordFailure(ctx, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	if allowed, _ := svc.Allowed(ctx, "admin", "10.0.0.2"); !allowed {
		t.Fatalf("different IP must not be locked")
	}
	if allowed, _ := svc.Allowed(ctx, "alice", "10.0.0.1"); !allowed {
		t.Fatalf("different username must not be locked")
	}
}

func TestResetClearsFailures(t *testing.T) {
	svc, err := New(NewMemoryStore(), WithConfig(Config{MaxAttempts: 2, Window: time.Minute}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.RecordFailure(ctx, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := svc.Reset(ctx, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	locked, err := svc.RecordFailure(ctx, "admin", "10.0.0.1")
	if err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if locked {
		t.Fatalf("reset should have cleared the counter")
	}
}

func TestWindowExpiryForgetsFailures(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	store := NewMemoryStore(WithClock(func() time.Time { return clock() }))
	svc, err := New(store, WithConfig(Config{MaxAttempts: 2, Window: time.Minute}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.RecordFailure(ctx, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	now = now.Add(2 * time.Minute)

	count, err := store.FailureCount(ctx, Key("admin", "10.0.0.1"))
	if err != nil {
		t.Fatalf("failure count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected expired window, got count %d", count)
	}
}
