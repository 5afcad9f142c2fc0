package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lshcube/dolphinn"
)

var buildFlags struct {
	points      string
	format      string
	n, d        int
	configPath  string
	k, r        int
	workers     int
	budget      int
	metricsAddr string
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a hypercube index over a pointset and report build statistics",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildFlags.points, "points", "", "path to the reference pointset")
	buildCmd.Flags().StringVar(&buildFlags.format, "format", "fvecs", "pointset format: text, fvecs, or idx")
	buildCmd.Flags().IntVar(&buildFlags.n, "n", 0, "number of reference points")
	buildCmd.Flags().IntVar(&buildFlags.d, "d", 0, "point dimension")
	buildCmd.Flags().StringVar(&buildFlags.configPath, "config", "", "path to a dolphinn.yaml config file")
	buildCmd.Flags().IntVar(&buildFlags.k, "k", 0, "cube dimension (0 = use config default)")
	buildCmd.Flags().IntVar(&buildFlags.r, "r", 0, "stable-hash quantization width (0 = use config default)")
	buildCmd.Flags().IntVar(&buildFlags.workers, "workers", 0, "build/query worker count (0 = use config default)")
	buildCmd.Flags().IntVar(&buildFlags.budget, "budget", 0, "candidate-examination budget (0 = use config default)")
	buildCmd.Flags().StringVar(&buildFlags.metricsAddr, "metrics-addr", "", "if set, serve Prometheus /metrics on this address (e.g. :2112)")
	_ = buildCmd.MarkFlagRequired("points")
	_ = buildCmd.MarkFlagRequired("n")
	_ = buildCmd.MarkFlagRequired("d")
	rootCmd.AddCommand(buildCmd)
}

// applyFlagOverrides overrides cfg's fields with any explicitly-set
// non-zero flag values.
func applyFlagOverrides(cfg *Config, k, r, workers, budget int) {
	if k > 0 {
		cfg.K = k
	}
	if r > 0 {
		cfg.R = r
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if budget > 0 {
		cfg.Budget = budget
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := dolphinn.NewTextLogger(0)

	cfg, err := loadConfig(buildFlags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, buildFlags.k, buildFlags.r, buildFlags.workers, buildFlags.budget)

	points, err := loadPointset(buildFlags.points, buildFlags.format, buildFlags.n, buildFlags.d)
	if err != nil {
		return err
	}
	resolveBudget(cfg, buildFlags.n)

	collector := startMetricsServer(buildFlags.metricsAddr)

	start := time.Now()
	idx, err := buildIndex(points, buildFlags.n, cfg, collector)
	dur := time.Since(start)
	logger.LogBuild(cmd.Context(), buildFlags.n, cfg.K, cfg.Workers, dur, err)
	if err != nil {
		return err
	}

	occ := idx.DumpVertexOccupancy()
	fmt.Printf("build completed in %s\n", dur)
	fmt.Printf("n=%d k=%d r=%d workers=%d\n", buildFlags.n, cfg.K, cfg.R, cfg.Workers)
	fmt.Printf("occupied vertices: %d\n", len(occ))
	return nil
}
