package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopDiscardsObservations(t *testing.T) {
	var c Collector = Noop{}
	assert.NotPanics(t, func() {
		c.ObserveBuildDuration(time.Second, 100, 10, 4)
		c.ObserveQueryDuration(time.Millisecond, "radius", 5)
		c.ObserveBudgetExhausted("nearest_neighbor")
	})
}

func TestPrometheusRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.ObserveBuildDuration(time.Second, 1000, 20, 4)
	p.ObserveQueryDuration(time.Millisecond, "radius", 12)
	p.ObserveBudgetExhausted("radius")
	p.ObserveBudgetExhausted("radius")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "dolphinn_query_budget_exhausted_total" {
			found = true
			require.Len(t, mf.Metric, 1)
			assert.Equal(t, float64(2), mf.Metric[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found, "expected budget-exhausted counter to be registered")
}
