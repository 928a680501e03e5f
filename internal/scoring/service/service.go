// Package service orchestrates the scoring pipeline: a validated employee
// record is turned into a feature vector, scored by the loaded classifier,
// and persisted to history before the result is returned. A record that was
// scored but could not be persisted is reported as a failed request.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"attrisk/internal/history"
	"attrisk/internal/model"
	"attrisk/internal/scoring"
	"attrisk/internal/scoring/metrics"
	dErrors "attrisk/pkg/domain-errors"
	"attrisk/pkg/platform/audit"
	"attrisk/pkg/platform/sentinel"
	"attrisk/pkg/requestcontext"
)

const (
	// DefaultHistoryLimit applies when the caller does not ask for a
	// specific number of records.
	DefaultHistoryLimit = 10
	// MaxHistoryLimit caps how many records one query may return.
	MaxHistoryLimit = 100
)

// Service runs the scoring pipeline.
type Service struct {
	adapter *model.Adapter
	store   history.Store
	audit   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Service)

func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(adapter *model.Adapter, store history.Store, opts ...Option) *Service {
	s := &Service{
		adapter: adapter,
		store:   store,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score derives features from an already validated record, runs the
// classifier, and appends the request to history. The history append and the
// returned result form one unit: if the append fails the caller gets an
// error, not a result.
func (s *Service) Score(ctx context.Context, rec scoring.EmployeeRecord) (scoring.ScoreResult, error) {
	started := requestcontext.Now(ctx)

	result, err := s.adapter.Score(scoring.Derive(rec))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotLoaded) {
			s.observeFailure("model_unavailable")
			return scoring.ScoreResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "classifier not loaded")
		}
		s.observeFailure("scoring")
		return scoring.ScoreResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "scoring failed")
	}

	record := &history.Record{
		ID:        uuid.New(),
		CreatedAt: started,
		Input:     rec,
		Result:    result,
	}
	if err := s.store.Append(ctx, record); err != nil {
		s.observeFailure("persistence")
		return scoring.ScoreResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record prediction")
	}

	if s.metrics != nil {
		s.metrics.ObservePrediction(result.Prediction, time.Since(started))
	}
	if s.audit != nil {
		s.audit.Publish(ctx, audit.EventPredictionScored, fmt.Sprintf("prediction=%d", result.Prediction))
	}
	s.logger.InfoContext(ctx, "prediction recorded",
		"record_id", record.ID,
		"prediction", result.Prediction,
	)
	return result, nil
}

// History returns the most recent records, newest first. A non-positive
// limit falls back to DefaultHistoryLimit; anything above MaxHistoryLimit is
// clamped.
func (s *Service) History(ctx context.Context, limit int) ([]*history.Record, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read history")
	}

	if s.metrics != nil {
		s.metrics.IncrementHistoryReads()
	}
	if s.audit != nil {
		s.audit.Publish(ctx, audit.EventHistoryRead, fmt.Sprintf("limit=%d", limit))
	}
	return records, nil
}

func (s *Service) observeFailure(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementFailure(reason)
	}
}
