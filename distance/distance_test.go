package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Simple", []float32{0, 0}, []float32{3, 4}, 25},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, 4 + 16},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{5}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
			// symmetry
			assert.InDelta(t, got, SquaredL2(tt.b, tt.a), 1e-5)
		})
	}
}

func TestSquaredL2ZeroIffEqual(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2, 3}
	require.Zero(t, SquaredL2(a, b))

	b[1] = 2.0001
	assert.NotZero(t, SquaredL2(a, b))
}

type sliceAccessor [][]float32

func (s sliceAccessor) At(i uint32) []float32 { return s[i] }
func (s sliceAccessor) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

func TestFirstWithinRadius(t *testing.T) {
	points := sliceAccessor{
		{0, 0},
		{10, 0},
		{1, 0},
	}

	t.Run("finds first in order, not nearest", func(t *testing.T) {
		idx, examined := FirstWithinRadius(points, []uint32{1, 2, 0}, []float32{0, 0}, 4, 10)
		require.Equal(t, uint32(2), idx)
		assert.Equal(t, 2, examined)
	})

	t.Run("no candidate within radius", func(t *testing.T) {
		idx, examined := FirstWithinRadius(points, []uint32{0, 1, 2}, []float32{100, 100}, 1, 10)
		require.Equal(t, Sentinel, idx)
		assert.Equal(t, 3, examined)
	})

	t.Run("budget stops the scan early", func(t *testing.T) {
		idx, examined := FirstWithinRadius(points, []uint32{1, 2, 0}, []float32{0, 0}, 4, 1)
		require.Equal(t, Sentinel, idx)
		assert.Equal(t, 1, examined)
	})
}

func TestRefineNearest(t *testing.T) {
	points := sliceAccessor{
		{0, 0},
		{10, 0},
		{1, 0},
	}

	best := NoBest()
	require.Equal(t, Sentinel, best.Index)
	require.True(t, math.IsInf(float64(best.Distance), 1))

	examined := RefineNearest(points, []uint32{1, 2, 0}, []float32{0, 0}, &best, 10)
	assert.Equal(t, 3, examined)
	assert.Equal(t, uint32(0), best.Index)
	assert.InDelta(t, float32(0), best.Distance, 1e-6)
}

func TestRefineNearestTiesKeepEarlier(t *testing.T) {
	points := sliceAccessor{
		{1, 0},
		{0, 1},
	}
	best := NoBest()
	RefineNearest(points, []uint32{0, 1}, []float32{0, 0}, &best, 10)
	assert.Equal(t, uint32(0), best.Index)
}

func TestRefineNearestBudget(t *testing.T) {
	points := sliceAccessor{
		{10, 0},
		{0, 0},
	}
	best := NoBest()
	examined := RefineNearest(points, []uint32{0, 1}, []float32{0, 0}, &best, 1)
	assert.Equal(t, 1, examined)
	// Only the first (farther) candidate was examined within budget.
	assert.Equal(t, uint32(0), best.Index)
}
