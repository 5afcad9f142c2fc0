// Package distance provides the numeric primitives the hypercube index is
// built on: squared Euclidean distance between two D-vectors, and
// budget-bounded scans over a candidate index list that either stop at the
// first point within a radius or refine a running nearest-neighbor best.
//
// Everything here is exact. "Approximate" in this system refers only to
// which candidates the caller offers this package, never to the distances
// it reports.
package distance
