package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/BarkinBalci/launch-tracker/internal/store"
)

func TestAppendMetrics_ObserveAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAppendMetrics(reg)

	m.ObserveAttempt(store.Attempt{Number: 1, Outcome: store.OutcomeConflict, Duration: 10 * time.Millisecond})
	m.ObserveAttempt(store.Attempt{Number: 2, Outcome: store.OutcomeSuccess, Duration: 20 * time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("1", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("2", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.attempts.WithLabelValues("1", "hard_error")))
}

func TestAppendMetrics_RecordLaunch(t *testing.T) {
	m := NewAppendMetrics(prometheus.NewRegistry())

	m.RecordLaunch("logged")
	m.RecordLaunch("logged")
	m.RecordLaunch("hard_error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.launches.WithLabelValues("logged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.launches.WithLabelValues("hard_error")))
}

func TestNewAppendMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewAppendMetrics(reg)
	second := NewAppendMetrics(reg)

	first.RecordLaunch("logged")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.launches.WithLabelValues("logged")))
}
