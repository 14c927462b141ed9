// Package raster implements the polygon boolean operations the core needs
// (union of many buffer polygons, intersection test plus centroid of two
// buffer polygons) on top of an occupancy grid instead of a computational
// geometry library. No package in the retrieved corpus exposes
// union/intersection over orb.Polygon, so this generalizes the teacher's
// ch.GridIndex bucket grid (internal/infra/routing/ch/spatial.go) from a
// nearest-neighbor index into a boolean-geometry index: same bucketed
// array-of-cells structure, a different query. See DESIGN.md.
package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// Grid is a fixed-resolution occupancy raster over a bounding box in
// projected (meter) coordinates. Cells are 1 when covered by the shape(s)
// rasterized into them.
type Grid struct {
	bound      orb.Bound
	cols, rows int
	cellSize   float64
	cells      []bool
}

// NewGrid allocates a grid covering bound at the given cell size in the
// same units as bound (meters, when bound is in a Mercator projection).
func NewGrid(bound orb.Bound, cellSize float64) *Grid {
	width := bound.Max[0] - bound.Min[0]
	height := bound.Max[1] - bound.Min[1]

	cols := int(math.Ceil(width/cellSize)) + 1
	rows := int(math.Ceil(height/cellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		bound:    bound,
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]bool, cols*rows),
	}
}

func (g *Grid) cellIndex(col, row int) int {
	return row*g.cols + col
}

func (g *Grid) colRowOf(p orb.Point) (int, int) {
	col := int((p[0] - g.bound.Min[0]) / g.cellSize)
	row := int((p[1] - g.bound.Min[1]) / g.cellSize)

	return col, row
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g *Grid) cellCenter(col, row int) orb.Point {
	return orb.Point{
		g.bound.Min[0] + (float64(col)+0.5)*g.cellSize,
		g.bound.Min[1] + (float64(row)+0.5)*g.cellSize,
	}
}

// RasterizeRing marks every cell whose center lies inside ring (even-odd
// rule). Used to burn a buffer polygon into the grid for union/intersection.
func (g *Grid) RasterizeRing(ring orb.Ring) {
	minCol, minRow := g.colRowOf(ring.Bound().Min)
	maxCol, maxRow := g.colRowOf(ring.Bound().Max)

	minCol = clamp(minCol, 0, g.cols-1)
	maxCol = clamp(maxCol, 0, g.cols-1)
	minRow = clamp(minRow, 0, g.rows-1)
	maxRow = clamp(maxRow, 0, g.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if pointInRing(ring, g.cellCenter(col, row)) {
				g.cells[g.cellIndex(col, row)] = true
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func pointInRing(ring orb.Ring, p orb.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi := ring[i]
		vj := ring[j]

		crosses := (vi[1] > p[1]) != (vj[1] > p[1])
		if !crosses {
			continue
		}

		xIntersect := vj[0] + (p[1]-vj[1])/(vi[1]-vj[1])*(vi[0]-vj[0])
		if p[0] < xIntersect {
			inside = !inside
		}
	}

	return inside
}

// And intersects this grid in place with other, which must share the same
// bound and cell size.
func (g *Grid) And(other *Grid) {
	for i := range g.cells {
		g.cells[i] = g.cells[i] && other.cells[i]
	}
}

// Any reports whether any cell is occupied.
func (g *Grid) Any() bool {
	for _, c := range g.cells {
		if c {
			return true
		}
	}

	return false
}

// Centroid returns the mean position of all occupied cell centers. Any
// must be true before calling this.
func (g *Grid) Centroid() orb.Point {
	var sumX, sumY float64
	var count int

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if !g.cells[g.cellIndex(col, row)] {
				continue
			}
			center := g.cellCenter(col, row)
			sumX += center[0]
			sumY += center[1]
			count++
		}
	}

	if count == 0 {
		return orb.Point{}
	}

	return orb.Point{sumX / float64(count), sumY / float64(count)}
}

// ConnectedComponents labels 4-connected runs of occupied cells via
// flood fill and returns, for each component, the list of its cell
// (col, row) coordinates. Used by Union to separate disjoint outer rings
// from a multi-polygon union result, per spec §4.D step 5/6.
func (g *Grid) ConnectedComponents() [][][2]int {
	visited := make([]bool, len(g.cells))
	var components [][][2]int

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			idx := g.cellIndex(col, row)
			if !g.cells[idx] || visited[idx] {
				continue
			}

			component := g.floodFill(col, row, visited)
			components = append(components, component)
		}
	}

	return components
}

func (g *Grid) floodFill(startCol, startRow int, visited []bool) [][2]int {
	type cell struct{ col, row int }

	stack := []cell{{startCol, startRow}}
	visited[g.cellIndex(startCol, startRow)] = true

	var component [][2]int

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, [2]int{c.col, c.row})

		neighbors := [4]cell{
			{c.col + 1, c.row},
			{c.col - 1, c.row},
			{c.col, c.row + 1},
			{c.col, c.row - 1},
		}
		for _, n := range neighbors {
			if !g.inBounds(n.col, n.row) {
				continue
			}
			idx := g.cellIndex(n.col, n.row)
			if !g.cells[idx] || visited[idx] {
				continue
			}
			visited[idx] = true
			stack = append(stack, n)
		}
	}

	return component
}

// AreaOf returns the area in square grid units (cellSize²) of a component
// produced by ConnectedComponents.
func (g *Grid) AreaOf(component [][2]int) float64 {
	return float64(len(component)) * g.cellSize * g.cellSize
}

// BoundaryRing traces the outer boundary of a component using Moore-
// neighbor tracing over its occupied cells and returns it as a closed
// orb.Ring in the same projected coordinates as the grid.
func (g *Grid) BoundaryRing(component [][2]int) orb.Ring {
	occupied := make(map[[2]int]bool, len(component))
	for _, c := range component {
		occupied[c] = true
	}

	start := component[0]
	for _, c := range component {
		if c[1] < start[1] || (c[1] == start[1] && c[0] < start[0]) {
			start = c
		}
	}

	// 8-direction Moore neighborhood, counter-clockwise (rows increase
	// northward) starting west.
	directions := [8][2]int{
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	}

	ring := orb.Ring{}
	current := start
	backtrack := 0

	for {
		ring = append(ring, g.cellCenter(current[0], current[1]))

		next, found := findNextBoundaryCell(current, backtrack, directions, occupied)
		if !found {
			break
		}

		backtrack = (indexOfDirection(directions, [2]int{current[0] - next[0], current[1] - next[1]}) + 1) % 8
		current = next

		if current == start {
			break
		}
		if len(ring) > len(component)*8 {
			break
		}
	}

	ring = append(ring, ring[0])

	return ring
}

func findNextBoundaryCell(current [2]int, backtrack int, directions [8][2]int, occupied map[[2]int]bool) ([2]int, bool) {
	for i := 0; i < 8; i++ {
		dir := directions[(backtrack+i)%8]
		candidate := [2]int{current[0] + dir[0], current[1] + dir[1]}
		if occupied[candidate] {
			return candidate, true
		}
	}

	return [2]int{}, false
}

func indexOfDirection(directions [8][2]int, d [2]int) int {
	for i, dir := range directions {
		if dir == d {
			return i
		}
	}

	return 0
}
