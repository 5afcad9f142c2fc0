package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Collector by reporting to a prometheus.Registerer.
type Prometheus struct {
	buildLatency    prometheus.Histogram
	queryLatency    *prometheus.HistogramVec
	budgetExhausted *prometheus.CounterVec
}

// NewPrometheus creates a Prometheus collector and registers its metrics
// with reg. Pass prometheus.DefaultRegisterer to expose them on the default
// /metrics handler.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		buildLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dolphinn_build_duration_seconds",
			Help:    "Latency of hypercube build operations",
			Buckets: prometheus.DefBuckets,
		}),
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dolphinn_query_duration_seconds",
			Help:    "Latency of hypercube query operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		budgetExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dolphinn_query_budget_exhausted_total",
			Help: "Queries that traversed the whole cube without finding an answer",
		}, []string{"kind"}),
	}

	reg.MustRegister(p.buildLatency, p.queryLatency, p.budgetExhausted)
	return p
}

func (p *Prometheus) ObserveBuildDuration(d time.Duration, n, k, workers int) {
	p.buildLatency.Observe(d.Seconds())
}

func (p *Prometheus) ObserveQueryDuration(d time.Duration, kind string, examined int) {
	p.queryLatency.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *Prometheus) ObserveBudgetExhausted(kind string) {
	p.budgetExhausted.WithLabelValues(kind).Inc()
}
