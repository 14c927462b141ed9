package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used throughout the core,
// matching the teacher's haversineMeters/haversineDistance constants
// (expressed here in kilometers per spec §8's calibration test).
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in
// kilometers. a and b are (lon, lat) points, as orb.Point always is.
func Haversine(a, b orb.Point) float64 {
	lat1 := a[1] * math.Pi / 180
	lat2 := b[1] * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b[0] - a[0]) * math.Pi / 180

	sinHalfLat := math.Sin(dLat / 2)
	sinHalfLng := math.Sin(dLng / 2)

	h := sinHalfLat*sinHalfLat + math.Cos(lat1)*math.Cos(lat2)*sinHalfLng*sinHalfLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// HaversineMeters is Haversine expressed in meters, for callers working in
// the road-graph's length_m/time_min units (component C/D).
func HaversineMeters(a, b orb.Point) float64 {
	return Haversine(a, b) * 1000
}
