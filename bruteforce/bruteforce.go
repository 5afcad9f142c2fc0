// Package bruteforce scans the entire reference pointset exactly, for use
// as a correctness oracle against the hypercube index in tests and the
// CLI's comparison command.
package bruteforce

import (
	"context"

	"github.com/lshcube/dolphinn/distance"
	"github.com/lshcube/dolphinn/internal/fanout"
)

// RadiusQuery returns the index of the first reference point (by ascending
// index order) within radius r of q, scanning every one of n points, or
// distance.Sentinel if none qualifies.
func RadiusQuery(points distance.PointAccessor, n int, q []float32, r float32) uint32 {
	r2 := r * r
	for i := 0; i < n; i++ {
		if distance.SquaredL2(points.At(uint32(i)), q) <= r2 {
			return uint32(i)
		}
	}
	return distance.Sentinel
}

// NearestNeighbor returns the true nearest reference point to q among all
// n points.
func NearestNeighbor(points distance.PointAccessor, n int, q []float32) distance.Best {
	best := distance.NoBest()
	for i := 0; i < n; i++ {
		d := distance.SquaredL2(points.At(uint32(i)), q)
		if d < best.Distance {
			best.Distance = d
			best.Index = uint32(i)
		}
	}
	return best
}

// RadiusQueryBatch answers q queries against n reference points, writing
// results into out (len(out) >= q), fanning the queries out across workers
// contiguous batches (the last absorbs the remainder).
func RadiusQueryBatch(ctx context.Context, points distance.PointAccessor, n int, queries distance.PointAccessor, q int, r float32, out []uint32, workers int) error {
	return fanout.Run(ctx, q, workers, func(i int) {
		out[i] = RadiusQuery(points, n, queries.At(uint32(i)), r)
	})
}

// NearestNeighborBatch is RadiusQueryBatch's nearest-neighbor counterpart.
func NearestNeighborBatch(ctx context.Context, points distance.PointAccessor, n int, queries distance.PointAccessor, q int, out []distance.Best, workers int) error {
	return fanout.Run(ctx, q, workers, func(i int) {
		out[i] = NearestNeighbor(points, n, queries.At(uint32(i)))
	})
}
