package aggregator

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"isochrone/internal/geo"
	"isochrone/internal/isochrone/raster"
	"isochrone/internal/spatialindex"
)

// ClusterThresholdKm is the Haversine distance below which two intersection
// centroids are merged into one hotspot candidate, per spec §4.F step 8.
const ClusterThresholdKm = 0.05

// CentroidQuantizeDigits is the decimal precision intersection centroids
// are rounded to before grouping duplicates from repeated pairwise overlaps
// at (numerically) the same point, per spec §4.F step 6.
const CentroidQuantizeDigits = 6

// DefaultMinIntersections and DefaultMaxPoints are the original service's
// defaults (not stated by name in spec §4.F, which only states the
// clamp floors); Aggregate replaces a minIntersections below 2 or a
// maxPoints below 1 with them rather than rejecting the call.
const (
	DefaultMinIntersections = 2
	DefaultMaxPoints        = 30
)

type rawIntersection struct {
	centroid orb.Point
	ids      [2]int
}

// Aggregate runs the full pipeline over buffers (spec §4.F steps 1-8):
// assign IDs and vertex counts, R-tree-pruned pairwise intersection,
// quantized-centroid grouping, multiplicity filtering, weight-descending
// sort with a size cap, greedy spatial clustering, then a final
// weight-descending sort of the clusters.
//
// minIntersections below 2 and maxPoints below 1 are clamped up to
// DefaultMinIntersections/DefaultMaxPoints rather than rejected, matching
// original_source/buffer_intersection_service.py's find_buffer_intersection_centers.
func Aggregate(buffers []BufferPolygon, minIntersections, maxPoints int) []HotspotCandidate {
	if len(buffers) == 0 {
		return nil
	}
	if minIntersections < 2 {
		minIntersections = DefaultMinIntersections
	}
	if maxPoints < 1 {
		maxPoints = DefaultMaxPoints
	}

	indexed := indexPolygons(buffers)

	intersections := findIntersections(indexed)

	grouped := groupByQuantizedCentroid(intersections)

	filtered := filterByMultiplicity(grouped, minIntersections)

	sorted := sortAndLimit(filtered, maxPoints)

	clusters := clusterPoints(sorted)
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Weight > clusters[j].Weight
	})

	return clusters
}

// indexPolygons is step 1 of the pipeline: assign every input buffer its
// 1-based position as ID and attach its vertex count, mirroring
// add_ids_to_polygons.
func indexPolygons(buffers []BufferPolygon) []IndexedPolygon {
	indexed := make([]IndexedPolygon, len(buffers))
	for i, b := range buffers {
		b.ID = i + 1
		indexed[i] = IndexedPolygon{BufferPolygon: b, VertexCount: len(b.Ring)}
	}

	return indexed
}

// findIntersections uses an R-tree over polygon bounds to prune the O(n^2)
// pairwise scan (spec §4.F step 3), then rasterizes each surviving
// candidate pair to test true intersection and recover its centroid
// (spec §4.F step 4).
func findIntersections(polys []IndexedPolygon) []rawIntersection {
	idx := spatialindex.New()
	for i, p := range polys {
		idx.Insert(spatialindex.Entry{ID: i, Bound: p.Ring.Bound()})
	}

	var results []rawIntersection
	seen := make(map[[2]int]bool)

	for i, p := range polys {
		candidates := idx.Query(p.Ring.Bound())
		for _, c := range candidates {
			j := c.ID
			if j <= i {
				continue
			}

			key := [2]int{i, j}
			if seen[key] {
				continue
			}
			seen[key] = true

			aMerc := geo.RingToMercator(p.Ring)
			bMerc := geo.RingToMercator(polys[j].Ring)

			centroidMerc, ok := raster.Intersects(aMerc, bMerc, raster.DefaultCellSizeM)
			if !ok {
				continue
			}

			results = append(results, rawIntersection{
				centroid: geo.ToWGS84(centroidMerc),
				ids:      [2]int{polys[i].ID, polys[j].ID},
			})
		}
	}

	return results
}

type groupedPoint struct {
	center    orb.Point
	weight    int
	sourceIDs map[int]bool
}

// groupByQuantizedCentroid merges raw pairwise intersections whose
// centroids round to the same coordinate at CentroidQuantizeDigits decimal
// places, per spec §4.F step 6. Each merge increments weight (how many
// distinct buffer pairs produced this point) and unions contributing IDs.
func groupByQuantizedCentroid(intersections []rawIntersection) []groupedPoint {
	index := make(map[[2]int64]*groupedPoint)
	var order []*groupedPoint

	scale := math.Pow(10, CentroidQuantizeDigits)

	for _, ix := range intersections {
		key := [2]int64{
			int64(math.Round(ix.centroid[0] * scale)),
			int64(math.Round(ix.centroid[1] * scale)),
		}

		g, ok := index[key]
		if !ok {
			g = &groupedPoint{center: ix.centroid, sourceIDs: make(map[int]bool)}
			index[key] = g
			order = append(order, g)
		}

		g.weight++
		g.sourceIDs[ix.ids[0]] = true
		g.sourceIDs[ix.ids[1]] = true
	}

	grouped := make([]groupedPoint, len(order))
	for i, g := range order {
		grouped[i] = *g
	}

	return grouped
}

func filterByMultiplicity(points []groupedPoint, minIntersections int) []groupedPoint {
	if minIntersections <= 0 {
		return points
	}

	filtered := make([]groupedPoint, 0, len(points))
	for _, p := range points {
		if p.weight >= minIntersections {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

func sortAndLimit(points []groupedPoint, maxPoints int) []groupedPoint {
	sorted := make([]groupedPoint, len(points))
	copy(sorted, points)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].weight > sorted[j].weight
	})

	if maxPoints > 0 && len(sorted) > maxPoints {
		sorted = sorted[:maxPoints]
	}

	return sorted
}

// clusterPoints greedily merges points within ClusterThresholdKm of a
// higher-weight point already accepted into the cluster set, processing
// points in descending weight order, per spec §4.F step 8.
func clusterPoints(points []groupedPoint) []HotspotCandidate {
	clusters := make([]HotspotCandidate, 0, len(points))

	for _, p := range points {
		merged := false

		for i := range clusters {
			if geo.Haversine(clusters[i].Center, p.center) <= ClusterThresholdKm {
				clusters[i].Weight += p.weight
				clusters[i].SourceIDs = append(clusters[i].SourceIDs, sortedIDs(p.sourceIDs)...)
				merged = true

				break
			}
		}

		if !merged {
			clusters = append(clusters, HotspotCandidate{
				Center:    p.center,
				Weight:    p.weight,
				SourceIDs: sortedIDs(p.sourceIDs),
			})
		}
	}

	return clusters
}

func sortedIDs(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}
