package isochrone

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isochrone/internal/geo"
	"isochrone/internal/roadgraph"
)

// gridGraph builds a small 3x3 lattice of nodes roughly 80m apart (one
// minute of walking time per edge), centered near the equator so Mercator
// distortion is negligible for assertions.
func gridGraph(t *testing.T) *roadgraph.Graph {
	t.Helper()

	const step = 0.00072 // approximately 80m at the equator

	var nodes []roadgraph.Node
	id := uint64(1)
	coordsToID := make(map[[2]int]uint64)

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			nodes = append(nodes, roadgraph.Node{
				ID:    id,
				Point: orb.Point{float64(col) * step, float64(row) * step},
			})
			coordsToID[[2]int{col, row}] = id
			id++
		}
	}

	var edges []roadgraph.Edge
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if col < 2 {
				edges = append(edges, roadgraph.Edge{
					StartID: coordsToID[[2]int{col, row}],
					EndID:   coordsToID[[2]int{col + 1, row}],
					LengthM: 80,
				})
			}
			if row < 2 {
				edges = append(edges, roadgraph.Edge{
					StartID: coordsToID[[2]int{col, row}],
					EndID:   coordsToID[[2]int{col, row + 1}],
					LengthM: 80,
				})
			}
		}
	}

	nodeIter := func(yield func(roadgraph.Node) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
	edgeIter := func(yield func(roadgraph.Edge) bool) {
		for _, e := range edges {
			if !yield(e) {
				return
			}
		}
	}

	return roadgraph.Load(nodeIter, edgeIter, nil)
}

func TestBuild_RejectsNonPositiveTime(t *testing.T) {
	b := NewBuilder(gridGraph(t))

	_, err := b.Build([]orb.Point{{0, 0}}, 0)
	assert.Error(t, err)
}

func TestBuild_NoStartNodes_WhenGraphEmpty(t *testing.T) {
	b := NewBuilder(roadgraph.Load(func(func(roadgraph.Node) bool) {}, func(func(roadgraph.Edge) bool) {}, nil))

	_, err := b.Build([]orb.Point{{0, 0}}, 5)
	assert.Error(t, err)
}

func TestBuild_ProducesNonEmptyRingContainingStart(t *testing.T) {
	g := gridGraph(t)
	b := NewBuilder(g)

	start := orb.Point{0.00072, 0.00072} // center node
	ring, err := b.Build([]orb.Point{start}, 2)
	require.NoError(t, err)
	require.NotEmpty(t, ring)

	vectors := make([]geo.Vector, len(ring))
	for i, p := range ring {
		vectors[i] = geo.Vector{X: p[0], Y: p[1]}
	}

	assert.True(t, geo.PointInRing(vectors, geo.Vector{X: start[0], Y: start[1]}))
}

func TestBuild_RejectsTimeAboveFifteenMinutes(t *testing.T) {
	b := NewBuilder(gridGraph(t))

	_, err := b.Build([]orb.Point{{0, 0}}, 15.5)
	assert.Error(t, err)

	var badTime *BadTimeError
	assert.ErrorAs(t, err, &badTime)
}

func TestBuild_AcceptsExactlyFifteenMinutes(t *testing.T) {
	b := NewBuilder(gridGraph(t))

	_, err := b.Build([]orb.Point{{0.00072, 0.00072}}, 15)
	assert.NoError(t, err)
}

func TestBuild_IncludesEdgeWithOnlyOneReachableEndpoint(t *testing.T) {
	// A half-minute budget from the corner node reaches only the corner
	// itself by node distance, but the edge to its neighbor should still
	// be buffered since one endpoint (the corner) is reachable — spec
	// §4.D step 3's OR semantics, not AND.
	g := gridGraph(t)
	b := NewBuilder(g)

	corner := orb.Point{0, 0}
	ring, err := b.Build([]orb.Point{corner}, 0.5)
	require.NoError(t, err)
	require.NotEmpty(t, ring)

	midEdge := geo.Vector{X: 0.00036, Y: 0}
	vectors := make([]geo.Vector, len(ring))
	for i, p := range ring {
		vectors[i] = geo.Vector{X: p[0], Y: p[1]}
	}

	assert.True(t, geo.PointInRing(vectors, midEdge))
}

func TestBuild_LargerTimeBudget_GrowsOrEqualsSmaller(t *testing.T) {
	g := gridGraph(t)
	b := NewBuilder(g)

	start := []orb.Point{{0.00072, 0.00072}}

	small, err := b.Build(start, 1)
	require.NoError(t, err)

	large, err := b.Build(start, 3)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, ringArea(large), ringArea(small))
}

func ringArea(ring orb.Ring) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
	}

	return math.Abs(sum / 2)
}
