// Package aggregator finds candidate hotspot centers where many buffer
// polygons overlap, grounded on original_source/buffer_intersection_service.py
// (add_ids_to_polygons, build_spatial_index, find_multi_intersections,
// cluster_points) and reimplemented in Go using internal/spatialindex for
// the R-tree pruning step and internal/isochrone/raster for the pairwise
// intersection test itself (spec §4.F).
package aggregator

import "github.com/paulmach/orb"

// BufferPolygon is one input buffer, already in WGS84. Aggregate replaces
// ID with the buffer's 1-based position in its input slice, so any
// caller-supplied ID is not carried into the output.
type BufferPolygon struct {
	ID   int
	Ring orb.Ring
}

// IndexedPolygon is a BufferPolygon after step 1 of the pipeline
// (add_ids_to_polygons in the original service): its ring vertex count is
// captured for observability, mirroring the Python's points_count field on
// the same dict, even though scoring never reads it.
type IndexedPolygon struct {
	BufferPolygon
	VertexCount int
}

// HotspotCandidate is one aggregated output center: the centroid of an
// intersection (grouping compares centroids rounded to
// CentroidQuantizeDigits, Center itself is not rounded), its multiplicity
// (how many distinct buffer pairs contributed to it after clustering), and
// the 1-based IDs of the contributing buffers.
type HotspotCandidate struct {
	Center    orb.Point
	Weight    int
	SourceIDs []int
}
