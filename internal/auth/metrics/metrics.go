package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the credential gate.
type Metrics struct {
	AuthFailures    prometheus.Counter
	AuthLockouts    prometheus.Counter
	AuthSuccess     prometheus.Counter
	LockedFollowups prometheus.Counter
}

// New creates and registers all auth metrics.
func New() *Metrics {
	return &Metrics{
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attrisk_auth_failures_total",
			Help: "Total number of rejected credential checks",
		}),
		AuthLockouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attrisk_auth_lockouts_total",
			Help: "Total number of identifiers locked out after repeated failures",
		}),
		AuthSuccess: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attrisk_auth_success_total",
			Help: "Total number of accepted credential checks",
		}),
		LockedFollowups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attrisk_auth_locked_rejections_total",
			Help: "Total number of attempts rejected while an identifier was locked",
		}),
	}
}

func (m *Metrics) IncrementFailures() { m.AuthFailures.Inc() }
func (m *Metrics) IncrementLockouts() { m.AuthLockouts.Inc() }
func (m *Metrics) IncrementSuccess()  { m.AuthSuccess.Inc() }
func (m *Metrics) IncrementLocked()   { m.LockedFollowups.Inc() }
