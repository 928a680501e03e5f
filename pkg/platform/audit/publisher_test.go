package audit

import (
	"context"
	"testing"
	"time"

	"attrisk/pkg/requestcontext"
)

func TestPublishEnrichesFromContext(t *testing.T) {
	inbox := make(chan Event, 1)
	p := NewPublisher(inbox, nil)

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithUsername(ctx, "ops")
	ctx = requestcontext.WithRequestID(ctx, "req-42")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "curl/8.5")

	p.Publish(ctx, EventAuthFailed, "basic auth rejected")

	select {
	case event := <-inbox:
		if event.Action != EventAuthFailed {
			t.Fatalf("unexpected action %q", event.Action)
		}
		if event.Category != CategorySecurity {
			t.Fatalf("auth failure must be a security event, got %q", event.Category)
		}
		if !event.Timestamp.Equal(now) {
			t.Fatalf("expected request-scoped time, got %v", event.Timestamp)
		}
		if event.Username != "ops" || event.RequestID != "req-42" || event.ClientIP != "203.0.113.7" || event.UserAgent != "curl/8.5" {
			t.Fatalf("context metadata not carried: %+v", event)
		}
	default:
		t.Fatalf("expected one published event")
	}
}

func TestPublishDropsWhenInboxFull(t *testing.T) {
	inbox := make(chan Event, 1)
	p := NewPublisher(inbox, nil)
	ctx := context.Background()

	p.Publish(ctx, EventPredictionScored, "first")
	// The buffer is full; this must not block the caller.
	done := make(chan struct{})
	go func() {
		p.Publish(ctx, EventPredictionScored, "second")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on a full inbox")
	}

	if got := len(inbox); got != 1 {
		t.Fatalf("expected overflow event dropped, inbox has %d", got)
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	p.Publish(context.Background(), EventHistoryRead, "noop")
}
