package geo

// FanPolygon tests point containment against a fan of triangles anchored at
// a single center vertex. It is only valid for rings that are star-shaped
// with respect to that center (every other vertex visible from it along a
// segment that stays inside the ring) — callers dealing with arbitrary
// rings (e.g. externally supplied buffer polygons) must use PointInRing
// instead. See spec §4.A / §9.
type FanPolygon struct {
	center    Vector
	triangles []Triangle
}

// NewFanPolygon builds a fan anchored at center over the ring vertices, in
// order, closing the fan with the wedge between the first and last vertex.
func NewFanPolygon(center Vector, ring []Vector) *FanPolygon {
	if len(ring) < 2 {
		return &FanPolygon{center: center}
	}

	triangles := make([]Triangle, 0, len(ring))
	for i := 1; i < len(ring); i++ {
		triangles = append(triangles, NewTriangle(center, ring[i-1], ring[i]))
	}
	triangles = append(triangles, NewTriangle(center, ring[0], ring[len(ring)-1]))

	return &FanPolygon{center: center, triangles: triangles}
}

// Contains reports whether p lies inside any wedge of the fan.
func (p *FanPolygon) Contains(point Vector) bool {
	for _, triangle := range p.triangles {
		if triangle.Contains(point) {
			return true
		}
	}

	return false
}

// PointInRing is a general-purpose point-in-polygon test using the
// even-odd ray-casting rule. Unlike FanPolygon it places no star-shape
// requirement on ring, at the cost of being O(n) per query with no
// precomputation reuse across calls.
func PointInRing(ring []Vector, p Vector) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi := ring[i]
		vj := ring[j]

		crosses := (vi.Y > p.Y) != (vj.Y > p.Y)
		if !crosses {
			continue
		}

		xIntersect := vj.X + (p.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
		if p.X < xIntersect {
			inside = !inside
		}
	}

	return inside
}
