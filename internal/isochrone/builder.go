package isochrone

import (
	"math"

	"github.com/paulmach/orb"

	"isochrone/internal/geo"
	"isochrone/internal/isochrone/raster"
	"isochrone/internal/roadgraph"
)

// BufferMeters is the fixed half-width applied to every reachable road
// segment before union, per spec §3.
const BufferMeters = 50.0

// MaxTimeMin is the upper bound on a caller-supplied time_min (spec §4.D/
// §6); the original rejects time_minutes > 15 outright.
const MaxTimeMin = 15.0

// DegenerateDiskRadiusDeg is the disk radius, in decimal degrees, buffered
// around each reachable node when no edge touches a node reached within
// timeMin, matching the original's fixed-degree fallback buffer.
const DegenerateDiskRadiusDeg = 0.0005

// degenerateCellSizeDeg is the degenerate fallback's raster resolution, in
// the same decimal-degree units as DegenerateDiskRadiusDeg.
const degenerateCellSizeDeg = DegenerateDiskRadiusDeg / 5

// rasterCellSizeM controls the union grid's resolution. Finer than
// BufferMeters so two parallel 50m-wide buffers a few meters apart still
// merge rather than leaving a seam.
const rasterCellSizeM = 5.0

// Builder computes walking-time isochrone polygons over a fixed road graph,
// per spec §4.D.
type Builder struct {
	graph *roadgraph.Graph
}

// NewBuilder wraps a loaded road graph.
func NewBuilder(graph *roadgraph.Graph) *Builder {
	return &Builder{graph: graph}
}

// Build computes the isochrone polygon reachable within timeMin minutes of
// walking from any of starts, returning the polygon as a WGS84 ring. When
// the union of buffered segments splits into more than one connected
// component, only the largest by area is returned (spec's MultiPolygon-to-
// single-ring reduction).
//
// Steps (spec §4.D):
//  1. Snap each start point to its nearest road node.
//  2. Run one multi-source Dijkstra pass bounded by timeMin.
//  3. For every edge with at least one endpoint reached within timeMin,
//     buffer its segment by BufferMeters in Web Mercator.
//  4. Union all buffers on a shared occupancy grid.
//  5. If the union has more than one connected component, keep only the
//     largest by area.
//  6. Project the result back to WGS84.
func (b *Builder) Build(starts []orb.Point, timeMin float64) (orb.Ring, error) {
	components, err := b.buildComponents(starts, timeMin)
	if err != nil {
		return nil, err
	}

	largest := components[0]
	for _, c := range components[1:] {
		if c.AreaM2 > largest.AreaM2 {
			largest = c
		}
	}

	return largest.Ring, nil
}

// BuildStrict is Build's counterpart for callers that cannot accept a
// MultiPolygon-to-single-ring reduction (the scorer's fan-polygon
// containment test requires one star-shaped ring, not an arbitrary pick
// among disjoint components): it returns MultiPolygonUnsupportedError
// instead of silently keeping only the largest piece.
func (b *Builder) BuildStrict(starts []orb.Point, timeMin float64) (orb.Ring, error) {
	components, err := b.buildComponents(starts, timeMin)
	if err != nil {
		return nil, err
	}
	if len(components) > 1 {
		return nil, &MultiPolygonUnsupportedError{Components: len(components)}
	}

	return components[0].Ring, nil
}

func (b *Builder) buildComponents(starts []orb.Point, timeMin float64) ([]raster.Component, error) {
	if timeMin <= 0 || timeMin > MaxTimeMin {
		return nil, &BadTimeError{TimeMin: timeMin}
	}
	if b.graph == nil {
		return nil, &NotInitializedError{}
	}
	if len(starts) == 0 {
		return nil, &NoInputsError{}
	}

	startIdx := make([]int, 0, len(starts))
	for _, p := range starts {
		idx, ok := b.graph.NearestNode(p)
		if !ok {
			continue
		}
		startIdx = append(startIdx, idx)
	}
	if len(startIdx) == 0 {
		return nil, &NoStartNodesError{}
	}

	dist := multiSourceDijkstra(b.graph, startIdx, timeMin)

	rings := b.bufferedSegments(dist, timeMin)
	if len(rings) > 0 {
		components := raster.Union(rings, rasterCellSizeM)
		return reprojectComponents(components), nil
	}

	// Degenerate case: no edge has a reachable endpoint within timeMin
	// (every reached node, start nodes included, has no incident edge). Fall back to
	// the original's fixed-degree disk around every reachable node so the
	// caller still gets a sensible polygon rather than an error. These
	// disks are built directly in WGS84 degrees, so the union runs in
	// degree space and needs no reprojection afterward.
	diskRings := b.disksAroundReachableNodes(dist, timeMin)
	if len(diskRings) == 0 {
		return nil, &NoStartNodesError{}
	}

	return raster.Union(diskRings, degenerateCellSizeDeg), nil
}

// bufferedSegments returns, in Mercator meters, one rectangular buffer ring
// per road edge with at least one endpoint reached within timeMin (spec
// §4.D step 3 / original_source's `if u in reachable_nodes or v in
// reachable_nodes`).
func (b *Builder) bufferedSegments(dist []float64, timeMin float64) []orb.Ring {
	var rings []orb.Ring

	seen := make(map[[2]int]bool)

	for idx := 0; idx < b.graph.Len(); idx++ {
		for _, edge := range b.graph.Neighbors(idx) {
			if dist[idx] > timeMin && dist[edge.To] > timeMin {
				continue
			}

			key := [2]int{idx, edge.To}
			if idx > edge.To {
				key = [2]int{edge.To, idx}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			a := geo.ToMercator(b.graph.NodePoint(idx))
			c := geo.ToMercator(b.graph.NodePoint(edge.To))
			rings = append(rings, bufferSegment(a, c, BufferMeters))
		}
	}

	return rings
}

// disksAroundReachableNodes returns one WGS84-degree disk ring, of radius
// DegenerateDiskRadiusDeg, centered on every node reached within timeMin.
func (b *Builder) disksAroundReachableNodes(dist []float64, timeMin float64) []orb.Ring {
	var rings []orb.Ring
	for idx := 0; idx < b.graph.Len(); idx++ {
		if dist[idx] > timeMin {
			continue
		}

		rings = append(rings, bufferDisk(b.graph.NodePoint(idx), DegenerateDiskRadiusDeg))
	}

	return rings
}

// reprojectComponents reprojects each component's ring from Mercator meters
// back to WGS84, keeping the meters-based AreaM2 used to pick the largest
// component when a union splits into more than one piece.
func reprojectComponents(components []raster.Component) []raster.Component {
	out := make([]raster.Component, len(components))
	for i, c := range components {
		out[i] = raster.Component{Ring: geo.RingToWGS84(c.Ring), AreaM2: c.AreaM2}
	}

	return out
}

// bufferSegment returns a's-to-c rectangle buffer of the given half-width,
// extended with a half-disk cap at each end approximated by capSides
// chords, in the segment's projected coordinate system.
func bufferSegment(a, c orb.Point, width float64) orb.Ring {
	dx := c[0] - a[0]
	dy := c[1] - a[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return bufferDisk(a, width)
	}

	const capSides = 8

	heading := math.Atan2(dy, dx)
	ring := make(orb.Ring, 0, 2*(capSides+1)+1)
	for _, end := range [2]struct {
		p     orb.Point
		start float64
	}{{c, heading + math.Pi/2}, {a, heading - math.Pi/2}} {
		for i := 0; i <= capSides; i++ {
			theta := end.start - math.Pi*float64(i)/capSides
			ring = append(ring, orb.Point{end.p[0] + width*math.Cos(theta), end.p[1] + width*math.Sin(theta)})
		}
	}

	return append(ring, ring[0])
}

// bufferDisk approximates a circle of the given radius around center as a
// 16-gon, used for the degenerate start-point case.
func bufferDisk(center orb.Point, radius float64) orb.Ring {
	const sides = 16

	ring := make(orb.Ring, 0, sides+1)
	for i := 0; i <= sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		ring = append(ring, orb.Point{
			center[0] + radius*math.Cos(theta),
			center[1] + radius*math.Sin(theta),
		})
	}

	return ring
}
