package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BarkinBalci/launch-tracker/internal/store"
)

var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// AppendMetrics exports append attempt signals as Prometheus series.
type AppendMetrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	launches *prometheus.CounterVec
}

// NewAppendMetrics creates the collectors and registers them with reg.
// Collectors that are already registered are reused.
func NewAppendMetrics(reg prometheus.Registerer) *AppendMetrics {
	m := &AppendMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchlog",
			Subsystem: "store",
			Name:      "append_attempts_total",
			Help:      "Append attempts by attempt number and outcome",
		}, []string{"attempt", "outcome"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "launchlog",
			Subsystem: "store",
			Name:      "append_attempt_duration_seconds",
			Help:      "Latency of a single fetch/write round",
			Buckets:   durationBuckets,
		}, []string{"outcome"}),

		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchlog",
			Subsystem: "service",
			Name:      "launches_total",
			Help:      "Confirmed launches by final result",
		}, []string{"result"}),
	}

	m.attempts = register(reg, m.attempts)
	m.duration = register(reg, m.duration)
	m.launches = register(reg, m.launches)

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// ObserveAttempt implements store.Observer
func (m *AppendMetrics) ObserveAttempt(a store.Attempt) {
	outcome := string(a.Outcome)
	m.attempts.WithLabelValues(strconv.Itoa(a.Number), outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(a.Duration.Seconds())
}

// RecordLaunch counts the final result of a confirmed launch: "logged",
// "conflict_exhausted" or "hard_error".
func (m *AppendMetrics) RecordLaunch(result string) {
	m.launches.WithLabelValues(result).Inc()
}
