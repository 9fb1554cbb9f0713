package kepler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the Kepler equation solves performed by a Propagator.
type Metrics struct {
	solves       *prometheus.CounterVec
	nonConverged *prometheus.CounterVec
	batchSeconds prometheus.Histogram
}

// NewMetrics creates the propagator metrics and registers them on reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kepler_solves_total",
				Help: "Total number of Kepler equation solves.",
			},
			[]string{"regime"},
		),
		nonConverged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kepler_solves_nonconverged_total",
				Help: "Number of Kepler equation solves which hit the iteration cap.",
			},
			[]string{"regime"},
		),
		batchSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kepler_batch_duration_seconds",
				Help:    "Duration of a batch propagation in seconds.",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.solves, m.nonConverged, m.batchSeconds)
	}
	return m
}

// observe records the outcome of one solve.
func (m *Metrics) observe(an Anomaly) {
	regime := an.Regime.String()
	m.solves.WithLabelValues(regime).Inc()
	if !an.Solution.Converged {
		m.nonConverged.WithLabelValues(regime).Inc()
	}
}

func (m *Metrics) observeBatch(start time.Time) {
	m.batchSeconds.Observe(time.Since(start).Seconds())
}
