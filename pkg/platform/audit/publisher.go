package audit

import (
	"context"
	"log/slog"

	"attrisk/pkg/requestcontext"
)

// Publisher enriches events with request-scoped metadata and hands them to
// the worker through a buffered channel. Publishing never blocks the request
// path: when the buffer is full the event is dropped and logged.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

// NewPublisher wraps the worker inbox.
func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

// Publish emits one event. Username, request ID and client metadata are
// filled from the context; the timestamp is the request-scoped time.
func (p *Publisher) Publish(ctx context.Context, action, detail string) {
	if p == nil || p.inbox == nil {
		return
	}

	event := Event{
		Category:  CategoryFor(action),
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Username:  requestcontext.Username(ctx),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		Detail:    detail,
	}

	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, event dropped",
				"action", action,
			)
		}
	}
}
