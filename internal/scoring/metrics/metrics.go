package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the scoring pipeline.
type Metrics struct {
	PredictionsTotal *prometheus.CounterVec
	ScoringFailures  *prometheus.CounterVec
	ScoringDuration  prometheus.Histogram
	HistoryReads     prometheus.Counter
}

// New creates and registers all scoring metrics.
func New() *Metrics {
	return &Metrics{
		PredictionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attrisk_predictions_total",
			Help: "Total number of completed predictions by label",
		}, []string{"label"}),
		ScoringFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attrisk_scoring_failures_total",
			Help: "Total number of scoring requests that failed, by reason",
		}, []string{"reason"}),
		ScoringDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attrisk_scoring_duration_seconds",
			Help:    "End-to-end duration of the scoring pipeline",
			Buckets: prometheus.DefBuckets,
		}),
		HistoryReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attrisk_history_reads_total",
			Help: "Total number of history list queries served",
		}),
	}
}

// ObservePrediction records one completed prediction.
func (m *Metrics) ObservePrediction(label int, elapsed time.Duration) {
	if label == 1 {
		m.PredictionsTotal.WithLabelValues("at_risk").Inc()
	} else {
		m.PredictionsTotal.WithLabelValues("stable").Inc()
	}
	m.ScoringDuration.Observe(elapsed.Seconds())
}

// IncrementFailure records one failed scoring request.
func (m *Metrics) IncrementFailure(reason string) {
	m.ScoringFailures.WithLabelValues(reason).Inc()
}

// IncrementHistoryReads records one history list query.
func (m *Metrics) IncrementHistoryReads() {
	m.HistoryReads.Inc()
}
