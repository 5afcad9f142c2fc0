// Package dolphinn provides an approximate-nearest-neighbor search index
// over a fixed, in-memory pointset, built once from a randomized embedding
// of the points onto a K-dimensional Hamming hypercube.
//
// The index draws K stable-distribution projection hashes, uses them to
// assign every reference point a K-bit code, and answers radius and
// nearest-neighbor queries by walking the hypercube outward from a query's
// own code in order of increasing Hamming distance, examining at most a
// caller-supplied budget of candidate points along the way.
//
// # Quick Start
//
//	pts, _ := pointset.LoadFvecs(r, n, d)
//	idx, err := hypercube.New(pts, n,
//	    hypercube.WithK(20),
//	    hypercube.WithWorkers(4),
//	    hypercube.WithBudget(n/100),
//	)
//
//	queries, _ := pointset.LoadFvecs(qr, q, d)
//	out := make([]uint32, q)
//	err = idx.RadiusQuery(ctx, queries, q, radius, budget, out, 4)
//
// # Model
//
// The index is built once and never mutated afterward: there is no
// Insert/Delete/Update. Rebuilding for a changed pointset means constructing
// a new Index.
//
//   - Correctness is approximate: a query may miss a true neighbor that its
//     code never brought within reach of the budget, but it never reports a
//     false positive — every returned index is verified against the exact
//     squared-Euclidean distance before being returned.
//   - Radius and nearest-neighbor queries that exhaust the Hamming traversal
//     or the examination budget without success report the reserved "none"
//     index (distance.Sentinel) rather than an error.
//
// # Key Features
//
//   - Stable-distribution (p-stable) locality-sensitive hashing
//   - Parallel, errgroup-bounded build and query fan-out
//   - Budget-bounded candidate examination with exact distance verification
//   - Pluggable pointset loaders (whitespace text, IDX, fvecs)
//   - Prometheus-instrumented build/query metrics
package dolphinn
