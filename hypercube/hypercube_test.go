package hypercube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshcube/dolphinn"
	"github.com/lshcube/dolphinn/distance"
)

type sliceAccessor [][]float32

func (s sliceAccessor) At(i uint32) []float32 { return s[i] }
func (s sliceAccessor) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

func clusteredPoints() sliceAccessor {
	pts := make(sliceAccessor, 0, 30)
	for i := 0; i < 10; i++ {
		pts = append(pts, []float32{float32(i) * 0.01, float32(i) * 0.01})
	}
	for i := 0; i < 10; i++ {
		pts = append(pts, []float32{100 + float32(i)*0.01, 100 + float32(i)*0.01})
	}
	for i := 0; i < 10; i++ {
		pts = append(pts, []float32{-100 - float32(i)*0.01, -100 - float32(i)*0.01})
	}
	return pts
}

func TestNewRejectsInvalidK(t *testing.T) {
	pts := clusteredPoints()
	_, err := New(pts, len(pts), WithK(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, dolphinn.ErrInvalidK)
}

func TestNewRejectsBadWorkerSplit(t *testing.T) {
	pts := clusteredPoints()
	_, err := New(pts, len(pts), WithK(6), WithWorkers(4))
	require.Error(t, err)
	var cfgErr *dolphinn.ErrInvalidConfig
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildSerialAndParallelBothCoverEveryPoint(t *testing.T) {
	pts := clusteredPoints()

	serial, err := New(pts, len(pts), WithK(8), WithWorkers(1), WithR(4))
	require.NoError(t, err)

	parallel, err := New(pts, len(pts), WithK(8), WithWorkers(7), WithR(4))
	require.NoError(t, err)

	// Both configurations build a complete K-row code table: every point
	// ends up counted across the cube exactly once.
	total := 0
	for _, n := range serial.DumpVertexOccupancy() {
		total += n
	}
	assert.Equal(t, len(pts), total)

	total = 0
	for _, n := range parallel.DumpVertexOccupancy() {
		total += n
	}
	assert.Equal(t, len(pts), total)
}

func TestRadiusQueryFindsNearbyCluster(t *testing.T) {
	pts := clusteredPoints()
	idx, err := New(pts, len(pts), WithK(10), WithWorkers(1), WithR(4), WithBudget(len(pts)))
	require.NoError(t, err)

	queries := sliceAccessor{{0, 0}}
	out := make([]uint32, 1)
	err = idx.RadiusQuery(context.Background(), queries, 1, 5, len(pts), out, 1)
	require.NoError(t, err)

	if out[0] != distance.Sentinel {
		assert.Less(t, distance.SquaredL2(pts.At(out[0]), queries.At(0)), float32(25))
	}
}

func TestNearestNeighborQueryReturnsABest(t *testing.T) {
	pts := clusteredPoints()
	idx, err := New(pts, len(pts), WithK(10), WithWorkers(1), WithR(4), WithBudget(len(pts)))
	require.NoError(t, err)

	queries := sliceAccessor{{0, 0}}
	out := make([]distance.Best, 1)
	err = idx.NearestNeighborQuery(context.Background(), queries, 1, len(pts), out, 1)
	require.NoError(t, err)
	assert.NotEqual(t, distance.Sentinel, out[0].Index)
}

func TestRadiusQueryRejectsDimensionMismatch(t *testing.T) {
	pts := clusteredPoints()
	idx, err := New(pts, len(pts), WithK(8), WithWorkers(1), WithR(4))
	require.NoError(t, err)

	queries := sliceAccessor{{0, 0, 0}} // dim 3, index built on dim 2
	out := make([]uint32, 1)
	err = idx.RadiusQuery(context.Background(), queries, 1, 5, len(pts), out, 1)
	require.Error(t, err)
	var dimErr *dolphinn.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dimErr)
}

func TestNearestNeighborQueryRejectsDimensionMismatch(t *testing.T) {
	pts := clusteredPoints()
	idx, err := New(pts, len(pts), WithK(8), WithWorkers(1), WithR(4))
	require.NoError(t, err)

	queries := sliceAccessor{{0, 0, 0}}
	out := make([]distance.Best, 1)
	err = idx.NearestNeighborQuery(context.Background(), queries, 1, len(pts), out, 1)
	require.Error(t, err)
	var dimErr *dolphinn.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dimErr)
}

func TestRadiusQueryReportsExaminedCounts(t *testing.T) {
	pts := clusteredPoints()
	idx, err := New(pts, len(pts), WithK(10), WithWorkers(1), WithR(4), WithBudget(len(pts)))
	require.NoError(t, err)

	queries := sliceAccessor{{0, 0}}
	out := make([]uint32, 1)
	examined := make([]int, 1)
	err = idx.RadiusQuery(context.Background(), queries, 1, 5, len(pts), out, 1, examined)
	require.NoError(t, err)
	assert.Greater(t, examined[0], 0)
}

func TestQueryFanOutHandlesManyQueriesAcrossWorkers(t *testing.T) {
	pts := clusteredPoints()
	idx, err := New(pts, len(pts), WithK(8), WithWorkers(1), WithR(4), WithBudget(len(pts)))
	require.NoError(t, err)

	queries := make(sliceAccessor, 13) // deliberately not divisible by worker count
	for i := range queries {
		queries[i] = []float32{float32(i), float32(i)}
	}
	out := make([]distance.Best, len(queries))
	err = idx.NearestNeighborQuery(context.Background(), queries, len(queries), len(pts), out, 4)
	require.NoError(t, err)
	for _, b := range out {
		assert.NotEqual(t, distance.Sentinel, b.Index)
	}
}
