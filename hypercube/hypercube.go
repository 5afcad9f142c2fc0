// Package hypercube implements the randomized Hamming-hypercube embedding:
// K stable-distribution hashes assign every reference point a K-bit code,
// and radius/nearest-neighbor queries walk the resulting cube outward from
// a query's own code in order of increasing Hamming distance.
package hypercube

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lshcube/dolphinn"
	"github.com/lshcube/dolphinn/distance"
	"github.com/lshcube/dolphinn/internal/fanout"
	"github.com/lshcube/dolphinn/lsh"
)

// Index is a built, immutable Hamming-hypercube ANN index over a borrowed
// reference pointset. There is no Insert/Delete/Update: build a new Index
// to index a changed pointset.
type Index struct {
	opts   Options
	points distance.PointAccessor
	n      int
	hashes []*lsh.Hash // len == opts.K; hashes[K-1] is the terminal hash
}

// New validates opts, then builds the index over the first n points of
// points. No partial index is published if validation or the build fails.
func New(points distance.PointAccessor, n int, optFns ...func(*Options)) (*Index, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Dimension = points.Dim()

	if err := validate(opts, n); err != nil {
		return nil, err
	}

	idx := &Index{opts: opts, points: points, n: n}
	if err := idx.build(context.Background()); err != nil {
		return nil, err
	}
	return idx, nil
}

func validate(opts Options, n int) error {
	if opts.K <= 0 {
		return dolphinn.ErrInvalidK
	}
	if n <= 0 {
		return &dolphinn.ErrInvalidConfig{Reason: "n must be positive"}
	}
	if opts.Dimension <= 0 {
		return &dolphinn.ErrInvalidConfig{Reason: "dimension must be positive"}
	}
	if opts.Workers < 1 {
		return &dolphinn.ErrInvalidConfig{Reason: "workers must be at least 1"}
	}
	if opts.Workers > 1 {
		if opts.Workers >= opts.K {
			return &dolphinn.ErrInvalidConfig{Reason: "workers must be less than k when workers > 1"}
		}
		if (opts.K-1)%opts.Workers != 0 {
			return &dolphinn.ErrInvalidConfig{Reason: "workers must evenly divide k-1 when workers > 1"}
		}
	}
	if opts.R <= 0 {
		return &dolphinn.ErrInvalidConfig{Reason: "r must be positive"}
	}
	return nil
}

// build partitions the K-1 non-terminal hashes across opts.Workers workers,
// each owning a disjoint contiguous column range of the N*K code buffer
// (and its own hash(es)), so no worker ever touches another's columns; it
// then builds the terminal hash single-threaded on the calling goroutine,
// since only the terminal hash populates the cube table and that table
// must see every point's completed row at once.
func (idx *Index) build(ctx context.Context) error {
	start := time.Now()
	K := idx.opts.K
	code := make([]byte, idx.n*K)

	nonTerminal := K - 1
	workers := idx.opts.Workers
	if workers > nonTerminal {
		workers = 1
	}

	idx.hashes = make([]*lsh.Hash, K)

	var columnsPerWorker int
	if workers > 0 && nonTerminal > 0 {
		columnsPerWorker = nonTerminal / workers
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		startCol := w * columnsPerWorker
		endCol := startCol + columnsPerWorker
		if w == workers-1 {
			endCol = nonTerminal
		}
		g.Go(func() error {
			for k := startCol; k < endCol; k++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				h := lsh.NewSeeded(idx.opts.Dimension, idx.opts.R, idx.opts.Mean, idx.opts.Deviation, int64(k)+1)
				h.HashPointset(idx.points, idx.n)
				h.AssignRandomBits(code, k, K)
				idx.hashes[k] = h
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		idx.opts.Metrics.ObserveBuildDuration(time.Since(start), idx.n, K, workers)
		return err
	}

	terminal := lsh.NewSeeded(idx.opts.Dimension, idx.opts.R, idx.opts.Mean, idx.opts.Deviation, int64(K))
	terminal.HashPointset(idx.points, idx.n)
	terminal.AssignRandomBitsTerminal(code, K)
	idx.hashes[K-1] = terminal

	idx.opts.Metrics.ObserveBuildDuration(time.Since(start), idx.n, K, workers)
	return nil
}

// queryCode assembles the K-bit starting code for q by asking every hash
// for its bit in order.
func (idx *Index) queryCode(q []float32) []byte {
	code := make([]byte, idx.opts.K)
	for k, h := range idx.hashes {
		code[k] = h.HashQueryBit(q)
	}
	return code
}

func (idx *Index) terminal() *lsh.Hash {
	return idx.hashes[idx.opts.K-1]
}

// budgetOr returns budget if positive, else the index's configured default.
func (idx *Index) budgetOr(budget int) int {
	if budget > 0 {
		return budget
	}
	return idx.opts.Budget
}

// RadiusQuery answers q queries, where queries.At(i) for i in [0,q) are the
// query vectors. out must have length >= q; out[i] receives the index of
// the first reference point found within radius r of queries.At(i), or
// distance.Sentinel if none was found within budget. If examined is
// non-nil, examined[i] receives how many candidates that query inspected.
// The q queries are partitioned into workers contiguous batches (the last
// absorbs any remainder) and run concurrently. Returns *dolphinn.ErrDimensionMismatch
// if queries' dimension doesn't match the index's.
func (idx *Index) RadiusQuery(ctx context.Context, queries distance.PointAccessor, q int, r float32, budget int, out []uint32, workers int, examined ...[]int) error {
	if queries.Dim() != idx.opts.Dimension {
		return &dolphinn.ErrDimensionMismatch{Expected: idx.opts.Dimension, Actual: queries.Dim()}
	}
	budget = idx.budgetOr(budget)
	r2 := r * r
	counts := examinedOut(examined)

	return fanout.Run(ctx, q, workers, func(i int) {
		start := time.Now()
		code := idx.queryCode(queries.At(uint32(i)))
		result, n := idx.terminal().RadiusQuery(code, idx.points, queries.At(uint32(i)), r2, budget)
		out[i] = result
		if counts != nil {
			counts[i] = n
		}
		idx.opts.Metrics.ObserveQueryDuration(time.Since(start), "radius", n)
		if result == distance.Sentinel {
			idx.opts.Metrics.ObserveBudgetExhausted("radius")
		}
	})
}

// NearestNeighborQuery is RadiusQuery's unbounded-radius counterpart: out[i]
// receives the nearest reference point found to queries.At(i) within
// budget, or distance.NoBest() if none was examined. If examined is
// non-nil, examined[i] receives how many candidates that query inspected.
// Returns *dolphinn.ErrDimensionMismatch if queries' dimension doesn't match
// the index's.
func (idx *Index) NearestNeighborQuery(ctx context.Context, queries distance.PointAccessor, q int, budget int, out []distance.Best, workers int, examined ...[]int) error {
	if queries.Dim() != idx.opts.Dimension {
		return &dolphinn.ErrDimensionMismatch{Expected: idx.opts.Dimension, Actual: queries.Dim()}
	}
	budget = idx.budgetOr(budget)
	counts := examinedOut(examined)

	return fanout.Run(ctx, q, workers, func(i int) {
		start := time.Now()
		code := idx.queryCode(queries.At(uint32(i)))
		best, n := idx.terminal().NearestNeighborQuery(code, idx.points, queries.At(uint32(i)), budget)
		out[i] = best
		if counts != nil {
			counts[i] = n
		}
		idx.opts.Metrics.ObserveQueryDuration(time.Since(start), "nearest_neighbor", n)
		if best.Index == distance.Sentinel {
			idx.opts.Metrics.ObserveBudgetExhausted("nearest_neighbor")
		}
	})
}

// examinedOut unpacks the variadic examined-counts output slice, which
// exists only so callers that don't care about per-query examination
// counts can omit it entirely.
func examinedOut(examined [][]int) []int {
	if len(examined) == 0 {
		return nil
	}
	return examined[0]
}

// DumpVertexOccupancy reports, for diagnostics, the number of reference
// points assigned to every realized cube vertex.
func (idx *Index) DumpVertexOccupancy() map[string]int {
	return idx.terminal().VertexOccupancy()
}
