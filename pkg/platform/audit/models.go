// Package audit captures security- and operations-relevant events emitted
// from domain logic. Events are transport-agnostic so stores and sinks can
// fan out.
package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategorySecurity covers events relevant to security monitoring.
	// Examples: auth failures, lockouts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. Examples: completed predictions, history reads.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	Username  string
	RequestID string
	ClientIP  string
	UserAgent string
	Detail    string
}

// Actions emitted by this service.
const (
	EventAuthFailed           = "auth_failed"
	EventAuthLockoutTriggered = "auth_lockout_triggered"
	EventPredictionScored     = "prediction_scored"
	EventHistoryRead          = "history_read"
)

// categories maps each action to its category; unknown actions default to
// operations.
var categories = map[string]EventCategory{
	EventAuthFailed:           CategorySecurity,
	EventAuthLockoutTriggered: CategorySecurity,
	EventPredictionScored:     CategoryOperations,
	EventHistoryRead:          CategoryOperations,
}

// CategoryFor returns the category of an action.
func CategoryFor(action string) EventCategory {
	if c, ok := categories[action]; ok {
		return c
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
