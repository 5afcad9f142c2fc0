package hypercube

import (
	"runtime"

	"github.com/lshcube/dolphinn/metrics"
)

// Options contains configuration for building an Index.
type Options struct {
	// Dimension is the fixed vector dimensionality D. Required, > 0.
	Dimension int

	// K is the cube dimension: the number of stable-distribution hashes
	// drawn, and the length in bits of every point's code. Required, > 0.
	K int

	// R is the stable-hash quantization width.
	R int

	// Workers is the number of goroutines the parallel build uses. When > 1
	// it must divide K-1 evenly and be < K, since the build partitions the
	// K-1 non-terminal hashes into Workers disjoint column ranges before the
	// single-threaded terminal hash. Query fan-out width is not taken from
	// here: RadiusQuery and NearestNeighborQuery take their own workers
	// argument.
	Workers int

	// Mean and Deviation parameterize the Gaussian the projection vectors'
	// components are drawn from.
	Mean, Deviation float64

	// Budget is the default per-query candidate-examination budget used
	// when a query call does not override it.
	Budget int

	// Metrics receives build/query instrumentation. Defaults to a no-op
	// collector.
	Metrics metrics.Collector
}

// DefaultOptions contains the default configuration for an Index.
var DefaultOptions = Options{
	R:         4,
	Workers:   runtime.GOMAXPROCS(0),
	Mean:      0,
	Deviation: 1,
	Metrics:   metrics.Noop{},
}

// WithK sets the cube dimension K.
func WithK(k int) func(*Options) {
	return func(o *Options) { o.K = k }
}

// WithR sets the stable-hash quantization width.
func WithR(r int) func(*Options) {
	return func(o *Options) { o.R = r }
}

// WithWorkers sets the build fan-out width.
func WithWorkers(workers int) func(*Options) {
	return func(o *Options) { o.Workers = workers }
}

// WithBudget sets the default per-query candidate-examination budget.
func WithBudget(budget int) func(*Options) {
	return func(o *Options) { o.Budget = budget }
}

// WithMeanDeviation sets the Gaussian parameters projection-vector
// components are drawn from.
func WithMeanDeviation(mean, deviation float64) func(*Options) {
	return func(o *Options) {
		o.Mean = mean
		o.Deviation = deviation
	}
}

// WithMetrics sets the metrics collector build/query operations report to.
func WithMetrics(collector metrics.Collector) func(*Options) {
	return func(o *Options) { o.Metrics = collector }
}
