package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lshcube/dolphinn/hypercube"
	"github.com/lshcube/dolphinn/metrics"
	"github.com/lshcube/dolphinn/pointset"
)

func parseFormat(s string) (pointset.Format, error) {
	switch s {
	case "text":
		return pointset.FormatText, nil
	case "fvecs":
		return pointset.FormatFvecs, nil
	case "idx":
		return pointset.FormatIDX, nil
	default:
		return 0, fmt.Errorf("dolphinn: unknown format %q (want text, fvecs, or idx)", s)
	}
}

func loadPointset(path, formatName string, n, d int) (*pointset.Dense, error) {
	format, err := parseFormat(formatName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dolphinn: opening %s: %w", path, err)
	}
	defer f.Close()

	ds, err := pointset.Load(format, f, n, d)
	if err != nil {
		return nil, fmt.Errorf("dolphinn: loading %s: %w", path, err)
	}
	return ds, nil
}

// startMetricsServer, if addr is non-empty, registers a Prometheus
// collector against prometheus.DefaultRegisterer and serves it at
// /metrics on addr in the background, returning the collector for
// buildIndex to wire in. Returns metrics.Noop{} if addr is empty.
func startMetricsServer(addr string) metrics.Collector {
	if addr == "" {
		return metrics.Noop{}
	}
	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer)
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		fmt.Printf("dolphinn: metrics available at http://%s/metrics\n", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("dolphinn: metrics server error: %v", err)
		}
	}()
	return collector
}

// resolveBudget fills in a sensible non-zero default budget when neither a
// config file nor a --budget flag supplied one: a config/flag value of 0
// would otherwise reach hypercube.Index as a real per-query budget and
// every query would examine zero candidates and silently return "none".
// n/100 mirrors the package doc's quickstart example; when n/100 is below
// 1 (fewer than 100 points) the budget is n, so a tiny pointset is searched
// in full.
func resolveBudget(cfg *Config, n int) {
	if cfg.Budget > 0 {
		return
	}
	cfg.Budget = n / 100
	if cfg.Budget < 1 {
		cfg.Budget = n
	}
}

func buildIndex(points *pointset.Dense, n int, cfg *Config, collector metrics.Collector) (*hypercube.Index, error) {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return hypercube.New(points, n,
		hypercube.WithK(cfg.K),
		hypercube.WithR(cfg.R),
		hypercube.WithWorkers(cfg.Workers),
		hypercube.WithBudget(cfg.Budget),
		hypercube.WithMeanDeviation(cfg.Mean, cfg.Deviation),
		hypercube.WithMetrics(collector),
	)
}
