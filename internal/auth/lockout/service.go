// Package lockout tracks failed credential checks per username+IP and locks
// the pair out after repeated failures, so password guessing cannot ride the
// scoring endpoint.
package lockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "attrisk/pkg/domain-errors"
)

// Config captures the lockout policy.
type Config struct {
	// MaxAttempts failures within Window lock the identifier.
	MaxAttempts int
	// Window bounds how long failures count against an identifier; the
	// lock also lasts until the window expires.
	Window time.Duration
}

// DefaultConfig is 5 attempts per 15 minutes.
func DefaultConfig() Config {
	return Config{MaxAttempts: 5, Window: 15 * time.Minute}
}

// Store counts failures per identifier. Implementations expire counts after
// the window on their own.
type Store interface {
	// IncrementFailures records one failure and returns the running count
	// within the window.
	IncrementFailures(ctx context.Context, identifier string, window time.Duration) (int, error)
	// FailureCount returns the current count without recording anything.
	FailureCount(ctx context.Context, identifier string) (int, error)
	// Clear forgets all failures for the identifier.
	Clear(ctx context.Context, identifier string) error
}

// Service applies the lockout policy over a Store.
type Service struct {
	store  Store
	config Config
	logger *slog.Logger
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.MaxAttempts > 0 && cfg.Window > 0 {
			s.config = cfg
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("lockout store is required")
	}
	svc := &Service{store: store, config: DefaultConfig()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Key builds the lockout identifier for a username+IP pair.
func Key(username, ip string) string {
	return username + "|" + ip
}

// Allowed reports whether the identifier may attempt authentication.
func (s *Service) Allowed(ctx context.Context, username, ip string) (bool, error) {
	count, err := s.store.FailureCount(ctx, Key(username, ip))
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read lockout state")
	}
	return count < s.config.MaxAttempts, nil
}

// RecordFailure counts one failed attempt and reports whether it tripped
// the lock.
func (s *Service) RecordFailure(ctx context.Context, username, ip string) (bool, error) {
	count, err := s.store.IncrementFailures(ctx, Key(username, ip), s.config.Window)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record auth failure")
	}
	locked := count >= s.config.MaxAttempts
	if locked && s.logger != nil {
		s.logger.WarnContext(ctx, "auth lockout triggered",
			"username", username,
			"failure_count", count,
		)
	}
	return locked, nil
}

// Reset forgets failures after a successful authentication.
func (s *Service) Reset(ctx context.Context, username, ip string) error {
	if err := s.store.Clear(ctx, Key(username, ip)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear lockout state")
	}
	return nil
}
