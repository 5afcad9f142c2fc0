// Package randsrc seeds independent PRNG streams for concurrent workers.
//
// Seeding every worker from wall-clock alone risks correlated streams when
// many workers start within the same clock tick; mixing in a caller-supplied
// tag (typically a worker or column index) keeps them apart.
package randsrc

import (
	"math/rand"
	"time"
)

// New returns a *rand.Rand seeded from the current time XOR'd with tag.
func New(tag int64) *rand.Rand {
	seed := time.Now().UnixNano() ^ tag
	return rand.New(rand.NewSource(seed))
}
