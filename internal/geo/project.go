package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ToMercator projects a WGS84 (lon, lat) point to spherical Mercator
// (EPSG:3857) meters, for any buffering step that must be meter-accurate.
func ToMercator(p orb.Point) orb.Point {
	return project.WGS84.ToMercator(p)
}

// ToWGS84 is the inverse of ToMercator, applied before geometry is handed
// back to a caller.
func ToWGS84(p orb.Point) orb.Point {
	return project.Mercator.ToWGS84(p)
}

// RingToMercator returns a copy of r with every vertex projected to
// Mercator meters; r itself is left unchanged.
func RingToMercator(r orb.Ring) orb.Ring {
	return project.Ring(r.Clone(), project.WGS84.ToMercator)
}

// RingToWGS84 is the inverse of RingToMercator, also returning a copy.
func RingToWGS84(r orb.Ring) orb.Ring {
	return project.Ring(r.Clone(), project.Mercator.ToWGS84)
}
