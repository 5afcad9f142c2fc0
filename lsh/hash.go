package lsh

import (
	"math"
	"math/rand"

	"github.com/lshcube/dolphinn/distance"
	"github.com/lshcube/dolphinn/internal/randsrc"
)

// Hash is one stable-distribution projection hash function:
// h(x) = floor((a·x + b) / r).
//
// A Hash progresses through the states unseeded -> projected -> bucketed ->
// bits-assigned as HashPointset/AssignRandomBits are called; the terminal
// hash in a K-hash family additionally reaches cube-populated via
// AssignRandomBitsTerminal. None of these transitions are reversible: a
// Hash is built once and read concurrently by any number of queries
// thereafter.
type Hash struct {
	dim int
	r   int
	a   []float64
	b   int
	rng *rand.Rand

	buckets map[int64][]uint32
	bits    map[int64]byte

	// cube is non-nil only for the terminal hash of a K-hash family.
	cube map[string][]uint32
}

// New builds a Hash by drawing a ~ N(mean, deviation)^dim i.i.d. and
// b ~ Uniform[0, r] from rng.
func New(dim, r int, mean, deviation float64, rng *rand.Rand) *Hash {
	a := make([]float64, dim)
	for i := range a {
		a[i] = rng.NormFloat64()*deviation + mean
	}
	return &Hash{
		dim:     dim,
		r:       r,
		a:       a,
		b:       rng.Intn(r + 1),
		rng:     rng,
		buckets: make(map[int64][]uint32),
		bits:    make(map[int64]byte),
	}
}

// NewSeeded builds a Hash with its own PRNG, seeded from the current time
// XOR'd with tag. Concurrent build workers should each pass a distinct tag
// (e.g. their column/worker index) so they never share a PRNG stream
// derived from wall-clock alone.
func NewSeeded(dim, r int, mean, deviation float64, tag int64) *Hash {
	return New(dim, r, mean, deviation, randsrc.New(tag))
}

// HashPoint computes h(x) = floor((a·x + b) / r) in floating precision.
func (h *Hash) HashPoint(x []float32) int64 {
	var dot float64
	for i, ai := range h.a {
		dot += ai * float64(x[i])
	}
	return int64(math.Floor((dot + float64(h.b)) / float64(h.r)))
}

// HashPointset hashes every point of the pointset, appending each point's
// index to the bucket its hash falls into. Insertion order within a bucket
// is irrelevant to correctness.
func (h *Hash) HashPointset(points distance.PointAccessor, n int) {
	for i := 0; i < n; i++ {
		key := h.HashPoint(points.At(uint32(i)))
		h.buckets[key] = append(h.buckets[key], uint32(i))
	}
}

// AssignRandomBits draws one uniform bit per observed bucket key and writes
// it into column k of every point's row in the K-wide code buffer. All
// points sharing a bucket therefore share a bit at this code position.
func (h *Hash) AssignRandomBits(code []byte, k, K int) {
	for key, idxs := range h.buckets {
		bit := byte(h.rng.Intn(2))
		h.bits[key] = bit
		for _, idx := range idxs {
			code[int(idx)*K+k] = bit
		}
	}
}

// AssignRandomBitsTerminal is AssignRandomBits for the terminal (K-th) hash:
// it additionally populates the cube table as each point's final code byte
// is written, since the cube table can only be built once a point's full
// row is complete.
func (h *Hash) AssignRandomBitsTerminal(code []byte, K int) {
	h.cube = make(map[string][]uint32)
	for key, idxs := range h.buckets {
		bit := byte(h.rng.Intn(2))
		h.bits[key] = bit
		for _, idx := range idxs {
			code[int(idx)*K+(K-1)] = bit
			row := string(code[int(idx)*K : (int(idx)+1)*K])
			h.cube[row] = append(h.cube[row], idx)
		}
	}
}

// HashQueryBit returns the bit a query should receive at this hash's
// position. If the query's bucket was observed at build time, it returns
// the bucket's recorded bit (so co-hashed pairs still share a bit
// deterministically); otherwise it draws a fresh uniform bit, since an
// unseen bucket has no canonical assignment and a random choice prevents a
// systematic miss. The miss path draws from the package-level rand source
// rather than h.rng: h.rng is single-owner during build and unsynchronized
// thereafter, but queries run concurrently across any number of goroutines
// sharing this Hash.
func (h *Hash) HashQueryBit(q []float32) byte {
	key := h.HashPoint(q)
	if bit, ok := h.bits[key]; ok {
		return bit
	}
	return byte(rand.Intn(2))
}

// CubeCandidates returns the reference point indices sharing the given
// K-byte code, or nil if no reference point realized that code. Valid only
// on the terminal hash, after AssignRandomBitsTerminal has run.
func (h *Hash) CubeCandidates(code []byte) []uint32 {
	if h.cube == nil {
		return nil
	}
	return h.cube[string(code)]
}

// VertexOccupancy returns, for diagnostics, the number of reference points
// assigned to every realized cube code. Valid only on the terminal hash.
func (h *Hash) VertexOccupancy() map[string]int {
	occ := make(map[string]int, len(h.cube))
	for code, idxs := range h.cube {
		occ[code] = len(idxs)
	}
	return occ
}

// BucketKeyCount reports the number of distinct bucket keys observed
// during build, for diagnostics and invariant testing.
func (h *Hash) BucketKeyCount() int {
	return len(h.buckets)
}

// BitFor reports the recorded bit for a bucket key, for invariant testing.
func (h *Hash) BitFor(key int64) (byte, bool) {
	b, ok := h.bits[key]
	return b, ok
}

// Bucket reports the point indices in a given bucket key, for invariant
// testing.
func (h *Hash) Bucket(key int64) []uint32 {
	return h.buckets[key]
}

// RadiusQuery walks the cube outward from code in order of increasing
// Hamming distance — first the exact vertex, then every vertex at distance
// 1, then 2, and so on through distance K — returning the first reference
// point found within r2 of q and how many candidates were examined to find
// it (or exhaust the search). It stops as soon as a point qualifies, the
// budget of examined points is exhausted, or distance K is reached without
// a match. Valid only on the terminal hash.
func (h *Hash) RadiusQuery(code []byte, pts distance.PointAccessor, q []float32, r2 float32, budget int) (uint32, int) {
	remaining := budget
	examined := 0

	idx, used := h.tryVertexRadius(code, pts, q, r2, remaining)
	remaining -= used
	examined += used
	if idx != distance.Sentinel || remaining <= 0 {
		return idx, examined
	}

	found := distance.Sentinel
	for d := 1; d <= len(code) && remaining > 0; d++ {
		h.enumerateAtDistance(code, d, func(cand []byte) bool {
			idx, used := h.tryVertexRadius(cand, pts, q, r2, remaining)
			remaining -= used
			examined += used
			if idx != distance.Sentinel {
				found = idx
				return false
			}
			return remaining > 0
		})
		if found != distance.Sentinel {
			break
		}
	}
	return found, examined
}

// NearestNeighborQuery walks the cube outward from code the same way
// RadiusQuery does, refining a running best candidate at every vertex
// visited, until distance K is reached or the examination budget runs out.
// Returns the best candidate found and how many points were examined.
// Valid only on the terminal hash.
func (h *Hash) NearestNeighborQuery(code []byte, pts distance.PointAccessor, q []float32, budget int) (distance.Best, int) {
	best := distance.NoBest()
	remaining := budget
	examined := 0

	used := h.tryVertexNearest(code, pts, q, &best, remaining)
	remaining -= used
	examined += used
	for d := 1; d <= len(code) && remaining > 0; d++ {
		h.enumerateAtDistance(code, d, func(cand []byte) bool {
			used := h.tryVertexNearest(cand, pts, q, &best, remaining)
			remaining -= used
			examined += used
			return remaining > 0
		})
	}
	return best, examined
}

func (h *Hash) tryVertexRadius(code []byte, pts distance.PointAccessor, q []float32, r2 float32, budget int) (uint32, int) {
	candidates := h.CubeCandidates(code)
	if candidates == nil {
		return distance.Sentinel, 0
	}
	return distance.FirstWithinRadius(pts, candidates, q, r2, budget)
}

func (h *Hash) tryVertexNearest(code []byte, pts distance.PointAccessor, q []float32, best *distance.Best, budget int) int {
	candidates := h.CubeCandidates(code)
	if candidates == nil {
		return 0
	}
	return distance.RefineNearest(pts, candidates, q, best, budget)
}

// enumerateAtDistance calls visit once for every code differing from code in
// exactly d positions, in lexicographic order of the flipped-bit positions,
// stopping early if visit returns false. The slice passed to visit aliases
// an internal scratch buffer and must not be retained past the call.
func (h *Hash) enumerateAtDistance(code []byte, d int, visit func(candidate []byte) bool) {
	K := len(code)
	cand := make([]byte, K)
	copy(cand, code)

	var rec func(start, depth int) bool
	rec = func(start, depth int) bool {
		if depth == d {
			return visit(cand)
		}
		for p := start; p <= K-(d-depth); p++ {
			cand[p] ^= 1
			cont := rec(p+1, depth+1)
			cand[p] ^= 1
			if !cont {
				return false
			}
		}
		return true
	}
	rec(0, 0)
}
