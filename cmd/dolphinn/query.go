package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lshcube/dolphinn"
	"github.com/lshcube/dolphinn/distance"
)

var queryFlags struct {
	points, queries string
	format          string
	n, d, q         int
	configPath      string
	k, r, workers   int
	budget          int
	radius          float64
	mode            string
	metricsAddr     string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Build a hypercube index and run radius or nearest-neighbor queries against it",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFlags.points, "points", "", "path to the reference pointset")
	queryCmd.Flags().StringVar(&queryFlags.queries, "queries", "", "path to the query pointset")
	queryCmd.Flags().StringVar(&queryFlags.format, "format", "fvecs", "pointset format: text, fvecs, or idx")
	queryCmd.Flags().IntVar(&queryFlags.n, "n", 0, "number of reference points")
	queryCmd.Flags().IntVar(&queryFlags.d, "d", 0, "point dimension")
	queryCmd.Flags().IntVar(&queryFlags.q, "q", 0, "number of queries")
	queryCmd.Flags().StringVar(&queryFlags.configPath, "config", "", "path to a dolphinn.yaml config file")
	queryCmd.Flags().IntVar(&queryFlags.k, "k", 0, "cube dimension (0 = use config default)")
	queryCmd.Flags().IntVar(&queryFlags.r, "r", 0, "stable-hash quantization width (0 = use config default)")
	queryCmd.Flags().IntVar(&queryFlags.workers, "workers", 0, "build/query worker count (0 = use config default)")
	queryCmd.Flags().IntVar(&queryFlags.budget, "budget", 0, "candidate-examination budget (0 = use config default)")
	queryCmd.Flags().Float64Var(&queryFlags.radius, "radius", 1, "query radius (radius mode only)")
	queryCmd.Flags().StringVar(&queryFlags.mode, "mode", "radius", "query mode: radius or nn")
	queryCmd.Flags().StringVar(&queryFlags.metricsAddr, "metrics-addr", "", "if set, serve Prometheus /metrics on this address (e.g. :2112)")
	for _, name := range []string{"points", "queries", "n", "d", "q"} {
		_ = queryCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	logger := dolphinn.NewTextLogger(0)

	cfg, err := loadConfig(queryFlags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, queryFlags.k, queryFlags.r, queryFlags.workers, queryFlags.budget)

	points, err := loadPointset(queryFlags.points, queryFlags.format, queryFlags.n, queryFlags.d)
	if err != nil {
		return err
	}
	queries, err := loadPointset(queryFlags.queries, queryFlags.format, queryFlags.q, queryFlags.d)
	if err != nil {
		return err
	}
	resolveBudget(cfg, queryFlags.n)

	collector := startMetricsServer(queryFlags.metricsAddr)
	idx, err := buildIndex(points, queryFlags.n, cfg, collector)
	if err != nil {
		return err
	}

	switch queryFlags.mode {
	case "radius":
		out := make([]uint32, queryFlags.q)
		examined := make([]int, queryFlags.q)
		start := time.Now()
		err = idx.RadiusQuery(cmd.Context(), queries, queryFlags.q, float32(queryFlags.radius), cfg.Budget, out, cfg.Workers, examined)
		totalExamined := 0
		for _, n := range examined {
			totalExamined += n
		}
		logger.LogQuery(cmd.Context(), "radius", totalExamined, err)
		if err != nil {
			return err
		}
		fmt.Printf("%d radius queries in %s\n", queryFlags.q, time.Since(start))
		for i, res := range out {
			if res == distance.Sentinel {
				fmt.Printf("query %d: none found within budget\n", i)
			} else {
				fmt.Printf("query %d: %d\n", i, res)
			}
		}
	case "nn":
		out := make([]distance.Best, queryFlags.q)
		examined := make([]int, queryFlags.q)
		start := time.Now()
		err = idx.NearestNeighborQuery(cmd.Context(), queries, queryFlags.q, cfg.Budget, out, cfg.Workers, examined)
		totalExamined := 0
		for _, n := range examined {
			totalExamined += n
		}
		logger.LogQuery(cmd.Context(), "nearest_neighbor", totalExamined, err)
		if err != nil {
			return err
		}
		fmt.Printf("%d nearest-neighbor queries in %s\n", queryFlags.q, time.Since(start))
		for i, best := range out {
			if best.Index == distance.Sentinel {
				fmt.Printf("query %d: none examined within budget\n", i)
			} else {
				fmt.Printf("query %d: %d (dist2=%.4f)\n", i, best.Index, best.Distance)
			}
		}
	default:
		return fmt.Errorf("dolphinn: unknown mode %q (want radius or nn)", queryFlags.mode)
	}
	return nil
}
