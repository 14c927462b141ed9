package aggregator

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRing(minLon, minLat, maxLon, maxLat float64) orb.Ring {
	return orb.Ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}
}

func TestAggregate_ThreeOverlappingSquares_OneHotspot(t *testing.T) {
	polys := []BufferPolygon{
		{ID: 1, Ring: squareRing(0, 0, 0.001, 0.001)},
		{ID: 2, Ring: squareRing(0.0003, 0.0003, 0.0013, 0.0013)},
		{ID: 3, Ring: squareRing(0.0005, 0.0005, 0.0015, 0.0015)},
	}

	candidates := Aggregate(polys, DefaultMinIntersections, DefaultMaxPoints)

	require.NotEmpty(t, candidates)
	assert.LessOrEqual(t, len(candidates), 3)
}

func TestAggregate_DisjointSquares_NoHotspots(t *testing.T) {
	polys := []BufferPolygon{
		{ID: 1, Ring: squareRing(0, 0, 0.0005, 0.0005)},
		{ID: 2, Ring: squareRing(10, 10, 10.0005, 10.0005)},
	}

	candidates := Aggregate(polys, DefaultMinIntersections, DefaultMaxPoints)

	assert.Empty(t, candidates)
}

func TestAggregate_TenStaircaseSquares_NeighborsOnlyOverlap(t *testing.T) {
	var polys []BufferPolygon
	for i := 0; i < 10; i++ {
		offset := float64(i) * 0.0009
		polys = append(polys, BufferPolygon{
			ID:   i,
			Ring: squareRing(offset, offset, offset+0.001, offset+0.001),
		})
	}

	candidates := Aggregate(polys, DefaultMinIntersections, 100)

	// Each square overlaps only its immediate neighbor, producing at most
	// nine pairwise intersections before clustering.
	total := 0
	for _, c := range candidates {
		total += c.Weight
	}
	assert.LessOrEqual(t, total, 9)
}

func TestAggregate_EmptyInput_ReturnsNil(t *testing.T) {
	assert.Nil(t, Aggregate(nil, DefaultMinIntersections, DefaultMaxPoints))
}

func TestAggregate_ClampsOutOfRangeOptions(t *testing.T) {
	polys := []BufferPolygon{
		{ID: 1, Ring: squareRing(0, 0, 0.001, 0.001)},
		{ID: 2, Ring: squareRing(0.0003, 0.0003, 0.0013, 0.0013)},
		{ID: 3, Ring: squareRing(0.0005, 0.0005, 0.0015, 0.0015)},
	}

	withClamp := Aggregate(polys, 0, 0)
	withDefaults := Aggregate(polys, DefaultMinIntersections, DefaultMaxPoints)

	assert.Equal(t, len(withDefaults), len(withClamp))
}

func TestAggregate_MinIntersectionsFiltersSingleOverlaps(t *testing.T) {
	polys := []BufferPolygon{
		{ID: 1, Ring: squareRing(0, 0, 0.001, 0.001)},
		{ID: 2, Ring: squareRing(0.0005, 0.0005, 0.0015, 0.0015)},
	}

	candidates := Aggregate(polys, DefaultMinIntersections, DefaultMaxPoints)

	// A single overlapping pair produces weight 1 after grouping, below the
	// default multiplicity floor of 2.
	assert.Empty(t, candidates)
}

func TestClusterPoints_CollapsesNearbyPoints(t *testing.T) {
	points := []groupedPoint{
		{center: orb.Point{0, 0}, weight: 5, sourceIDs: map[int]bool{1: true}},
		{center: orb.Point{0.0001, 0.0001}, weight: 3, sourceIDs: map[int]bool{2: true}},
		{center: orb.Point{10, 10}, weight: 1, sourceIDs: map[int]bool{3: true}},
	}

	clusters := clusterPoints(points)

	require.Len(t, clusters, 2)
	assert.Equal(t, 8, clusters[0].Weight)
}
