// Package metrics instruments hypercube build and query operations.
package metrics

import "time"

// Collector receives build/query instrumentation from a hypercube.Index.
// Implementations must be safe for concurrent use: ObserveQueryDuration and
// ObserveBudgetExhausted are called from every query worker goroutine.
type Collector interface {
	ObserveBuildDuration(d time.Duration, n, k, workers int)
	ObserveQueryDuration(d time.Duration, kind string, examined int)
	ObserveBudgetExhausted(kind string)
}

// Noop discards every observation. It is the zero-value default Collector.
type Noop struct{}

func (Noop) ObserveBuildDuration(time.Duration, int, int, int) {}
func (Noop) ObserveQueryDuration(time.Duration, string, int)   {}
func (Noop) ObserveBudgetExhausted(string)                     {}
