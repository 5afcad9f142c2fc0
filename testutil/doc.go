// Package testutil provides testing utilities for dolphinn.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random-pointset generator and a brute-force
// ground-truth helper for verifying hypercube query results.
//
// # Random Pointset Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.ClusteredPointset(1000, 32, 10, 0.1) // 1000 points, dim 32, 10 clusters
//
// # Ground Truth
//
//	best := testutil.BruteForceNearest(pts, pts.N(), query)
package testutil
