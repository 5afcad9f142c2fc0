package testutil

import (
	"math/rand"
	"sync"

	"github.com/lshcube/dolphinn/distance"
	"github.com/lshcube/dolphinn/pointset"
)

// RNG encapsulates a random number generator and its seed. It is
// thread-safe, so concurrent build-worker tests can share one instance.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// UniformPointset generates a dense pointset with coordinates uniform in
// [-span/2, span/2). Uses a single backing array, matching pointset.Dense's
// row-major layout.
func (r *RNG) UniformPointset(n, dim int, span float32) *pointset.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, n*dim)
	for i := range data {
		data[i] = (r.rand.Float32() - 0.5) * span
	}
	return pointset.NewDense(data, dim)
}

// ClusteredPointset generates n points of dimension dim clustered around
// clusters centroids drawn uniform in [-50, 50), with Gaussian noise scaled
// by spread around each centroid. Useful for exercising the hypercube's
// bucket/cube structure against non-uniform data, the way a real embedding
// distribution would.
func (r *RNG) ClusteredPointset(n, dim, clusters int, spread float32) *pointset.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := make([][]float32, clusters)
	for c := range centroids {
		centroid := make([]float32, dim)
		for j := range centroid {
			centroid[j] = (r.rand.Float32() - 0.5) * 100
		}
		centroids[c] = centroid
	}

	data := make([]float32, n*dim)
	for i := 0; i < n; i++ {
		centroid := centroids[i%clusters]
		vec := data[i*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = centroid[j] + float32(r.rand.NormFloat64())*spread
		}
	}
	return pointset.NewDense(data, dim)
}

// Query draws a single query vector the same way ClusteredPointset draws a
// point, by perturbing an existing reference point with Gaussian noise.
// Useful for generating a query the index is expected to find a neighbor
// for.
func (r *RNG) Query(pts *pointset.Dense, near uint32, spread float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := pts.At(near)
	q := make([]float32, len(src))
	for j := range q {
		q[j] = src[j] + float32(r.rand.NormFloat64())*spread
	}
	return q
}

// BruteForceNearest returns the exact nearest neighbor to q among the
// first n points of pts, for use as ground truth against hypercube query
// results. Returns distance.NoBest() if n is 0.
func BruteForceNearest(pts distance.PointAccessor, n int, q []float32) distance.Best {
	best := distance.NoBest()
	for i := 0; i < n; i++ {
		d := distance.SquaredL2(pts.At(uint32(i)), q)
		if d < best.Distance {
			best.Distance = d
			best.Index = uint32(i)
		}
	}
	return best
}
