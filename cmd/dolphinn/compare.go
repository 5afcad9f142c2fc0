package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/lshcube/dolphinn/bruteforce"
	"github.com/lshcube/dolphinn/distance"
)

var compareFlags struct {
	points, queries string
	format          string
	n, d, q         int
	configPath      string
	k, r, workers   int
	budget          int
	radius          float64
	metricsAddr     string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare hypercube radius-query results against a brute-force oracle",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareFlags.points, "points", "", "path to the reference pointset")
	compareCmd.Flags().StringVar(&compareFlags.queries, "queries", "", "path to the query pointset")
	compareCmd.Flags().StringVar(&compareFlags.format, "format", "fvecs", "pointset format: text, fvecs, or idx")
	compareCmd.Flags().IntVar(&compareFlags.n, "n", 0, "number of reference points")
	compareCmd.Flags().IntVar(&compareFlags.d, "d", 0, "point dimension")
	compareCmd.Flags().IntVar(&compareFlags.q, "q", 0, "number of queries")
	compareCmd.Flags().StringVar(&compareFlags.configPath, "config", "", "path to a dolphinn.yaml config file")
	compareCmd.Flags().IntVar(&compareFlags.k, "k", 0, "cube dimension (0 = use config default)")
	compareCmd.Flags().IntVar(&compareFlags.r, "r", 0, "stable-hash quantization width (0 = use config default)")
	compareCmd.Flags().IntVar(&compareFlags.workers, "workers", 0, "build/query worker count (0 = use config default)")
	compareCmd.Flags().IntVar(&compareFlags.budget, "budget", 0, "candidate-examination budget (0 = use config default)")
	compareCmd.Flags().Float64Var(&compareFlags.radius, "radius", 1, "query radius")
	compareCmd.Flags().StringVar(&compareFlags.metricsAddr, "metrics-addr", "", "if set, serve Prometheus /metrics on this address (e.g. :2112)")
	for _, name := range []string{"points", "queries", "n", "d", "q"} {
		_ = compareCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(compareFlags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, compareFlags.k, compareFlags.r, compareFlags.workers, compareFlags.budget)

	points, err := loadPointset(compareFlags.points, compareFlags.format, compareFlags.n, compareFlags.d)
	if err != nil {
		return err
	}
	queries, err := loadPointset(compareFlags.queries, compareFlags.format, compareFlags.q, compareFlags.d)
	if err != nil {
		return err
	}
	resolveBudget(cfg, compareFlags.n)

	collector := startMetricsServer(compareFlags.metricsAddr)
	idx, err := buildIndex(points, compareFlags.n, cfg, collector)
	if err != nil {
		return err
	}

	ctx := context.Background()
	approx := make([]uint32, compareFlags.q)
	examined := make([]int, compareFlags.q)
	if err := idx.RadiusQuery(ctx, queries, compareFlags.q, float32(compareFlags.radius), cfg.Budget, approx, cfg.Workers, examined); err != nil {
		return err
	}

	exact := make([]uint32, compareFlags.q)
	if err := bruteforce.RadiusQueryBatch(ctx, points, compareFlags.n, queries, compareFlags.q, float32(compareFlags.radius), exact, cfg.Workers); err != nil {
		return err
	}

	r2 := float32(compareFlags.radius) * float32(compareFlags.radius)
	return reportComparison(compareFlags.q, approx, exact, examined, points, queries, r2)
}

// reportComparison prints an agreement rate (both sides agree on
// found-or-not-found) and a soundness rate (every approximate hit really is
// within radius, checked by an exact distance computation, since the index
// must never fabricate a false positive), plus mean/stddev of how many
// candidates each approximate query actually examined against its budget.
func reportComparison(q int, approx, exact []uint32, examined []int, points, queries distance.PointAccessor, r2 float32) error {
	agree := 0
	sound := 0
	found := 0
	examinedCounts := make([]float64, 0, q)

	for i := 0; i < q; i++ {
		approxFound := approx[i] != distance.Sentinel
		exactFound := exact[i] != distance.Sentinel
		if approxFound == exactFound {
			agree++
		}
		examinedCounts = append(examinedCounts, float64(examined[i]))
		if approxFound {
			found++
			if distance.SquaredL2(points.At(approx[i]), queries.At(uint32(i))) <= r2 {
				sound++
			}
		}
	}

	agreementRate := float64(agree) / float64(q)
	fmt.Printf("agreement: %d/%d (%.2f%%)\n", agree, q, agreementRate*100)
	if found > 0 {
		soundnessRate := float64(sound) / float64(found)
		fmt.Printf("soundness: %d/%d approximate hits confirmed exact (%.2f%%)\n", sound, found, soundnessRate*100)
	}
	if len(examinedCounts) > 0 {
		mean := stat.Mean(examinedCounts, nil)
		stddev := stat.StdDev(examinedCounts, nil)
		fmt.Printf("candidates examined per query: mean=%.2f stddev=%.2f\n", mean, stddev)
	}
	return nil
}
