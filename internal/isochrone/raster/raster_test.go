package raster

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}
}

func TestUnion_SingleRing_OneComponent(t *testing.T) {
	components := Union([]orb.Ring{square(0, 0, 10, 10)}, 1.0)

	require.Len(t, components, 1)
	assert.InDelta(t, 100.0, components[0].AreaM2, 20.0)
}

func TestUnion_OverlappingSquares_MergeToOne(t *testing.T) {
	rings := []orb.Ring{
		square(0, 0, 10, 10),
		square(5, 5, 15, 15),
	}

	components := Union(rings, 1.0)

	require.Len(t, components, 1)
}

func TestUnion_DisjointSquares_StayApart(t *testing.T) {
	rings := []orb.Ring{
		square(0, 0, 5, 5),
		square(100, 100, 105, 105),
	}

	components := Union(rings, 1.0)

	assert.Len(t, components, 2)
}

func TestIntersects_OverlappingSquares(t *testing.T) {
	_, ok := Intersects(square(0, 0, 10, 10), square(5, 5, 15, 15), 1.0)
	assert.True(t, ok)
}

func TestIntersects_DisjointSquares(t *testing.T) {
	_, ok := Intersects(square(0, 0, 5, 5), square(100, 100, 105, 105), 1.0)
	assert.False(t, ok)
}
