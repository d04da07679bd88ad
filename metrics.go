package orbit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects propagation statistics, labeled by orbit type.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	propagationDuration *prometheus.HistogramVec
	propagationsTotal   *prometheus.CounterVec
	fallbacksTotal      *prometheus.CounterVec
	failuresTotal       *prometheus.CounterVec
}

// NewMetrics creates the propagation metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		propagationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kepler_propagation_duration_seconds",
				Help:    "Time spent solving for the universal anomaly",
				Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"type"},
		),
		propagationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kepler_propagations_total",
				Help: "Total number of propagations",
			},
			[]string{"type"},
		),
		fallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kepler_fallbacks_total",
				Help: "Total number of Newton-Raphson failures recovered by Brent",
			},
			[]string{"type"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kepler_failures_total",
				Help: "Total number of propagations which returned an error",
			},
			[]string{"type"},
		),
	}

	reg.MustRegister(m.propagationDuration)
	reg.MustRegister(m.propagationsTotal)
	reg.MustRegister(m.fallbacksTotal)
	reg.MustRegister(m.failuresTotal)

	return m
}

// RecordPropagation records a successful propagation.
func (m *Metrics) RecordPropagation(t OrbitType, duration time.Duration) {
	if m == nil {
		return
	}
	m.propagationDuration.WithLabelValues(t.String()).Observe(duration.Seconds())
	m.propagationsTotal.WithLabelValues(t.String()).Inc()
}

// RecordFallback records a Newton-Raphson failure.
func (m *Metrics) RecordFallback(t OrbitType) {
	if m == nil {
		return
	}
	m.fallbacksTotal.WithLabelValues(t.String()).Inc()
}

// RecordFailure records a propagation error.
func (m *Metrics) RecordFailure(t OrbitType) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(t.String()).Inc()
}
