package raster

import (
	"github.com/paulmach/orb"
)

// DefaultCellSizeM is the raster resolution the aggregator uses for its
// pairwise Intersects test, fine relative to the 50m buffer width the core
// works with (spec §3/§4.D).
const DefaultCellSizeM = 2.0

// Component is one connected outer ring produced by Union, paired with its
// area so callers can pick the largest (spec §4.D step 6).
type Component struct {
	Ring   orb.Ring
	AreaM2 float64
}

// Union rasterizes every ring in rings (already in a projected, meter-based
// coordinate system) into a shared grid at cellSize resolution and returns
// one Component per connected region of the result. A single input ring
// yields exactly one Component; overlapping or touching inputs merge into
// fewer, larger components (the "unary union" of spec §4.D step 5).
func Union(rings []orb.Ring, cellSize float64) []Component {
	if len(rings) == 0 {
		return nil
	}

	bound := rings[0].Bound()
	for _, r := range rings[1:] {
		bound = bound.Union(r.Bound())
	}
	// Pad so boundary tracing never runs off the edge of the grid.
	pad := cellSize * 3
	bound = orb.Bound{
		Min: orb.Point{bound.Min[0] - pad, bound.Min[1] - pad},
		Max: orb.Point{bound.Max[0] + pad, bound.Max[1] + pad},
	}

	grid := NewGrid(bound, cellSize)
	for _, r := range rings {
		grid.RasterizeRing(r)
	}

	components := grid.ConnectedComponents()
	result := make([]Component, 0, len(components))
	for _, c := range components {
		result = append(result, Component{
			Ring:   grid.BoundaryRing(c),
			AreaM2: grid.AreaOf(c),
		})
	}

	return result
}

// Intersects rasterizes two rings at cellSize resolution and reports
// whether they overlap plus the centroid of the overlap region, per
// spec §4.F step 4 (pairwise polygon intersection test).
func Intersects(a, b orb.Ring, cellSize float64) (centroid orb.Point, ok bool) {
	bound := a.Bound().Union(b.Bound())
	pad := cellSize * 3
	bound = orb.Bound{
		Min: orb.Point{bound.Min[0] - pad, bound.Min[1] - pad},
		Max: orb.Point{bound.Max[0] + pad, bound.Max[1] + pad},
	}

	gridA := NewGrid(bound, cellSize)
	gridA.RasterizeRing(a)

	gridB := NewGrid(bound, cellSize)
	gridB.RasterizeRing(b)

	gridA.And(gridB)
	if !gridA.Any() {
		return orb.Point{}, false
	}

	return gridA.Centroid(), true
}
