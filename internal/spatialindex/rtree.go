// Package spatialindex wraps github.com/dhconnelly/rtreego to give the
// aggregator a bbox-query index over buffer polygons, pruning the pairwise
// intersection scan from O(n^2) down to O(n log n + k) (spec §4.F step 3).
// Grounded on the other_examples rtree wrapper (pkg/rtree/rtree.go), which
// wraps the same library over point data; this generalizes it to axis-
// aligned bounding boxes of polygons instead of single points.
package spatialindex

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const defaultBranchingFactor = 25

// Entry is one indexed item: its bounding box plus an opaque identifier
// the caller uses to map back to its own data (e.g. a buffer polygon index).
type Entry struct {
	ID    int
	Bound orb.Bound
}

func (e Entry) Bounds() rtreego.Rect {
	// rtreego requires strictly positive lengths; widen degenerate boxes by
	// an epsilon rather than rejecting them.
	const eps = 1e-9

	width := e.Bound.Max[0] - e.Bound.Min[0]
	if width <= 0 {
		width = eps
	}
	height := e.Bound.Max[1] - e.Bound.Min[1]
	if height <= 0 {
		height = eps
	}

	rect, _ := rtreego.NewRect(
		rtreego.Point{e.Bound.Min[0], e.Bound.Min[1]},
		[]float64{width, height},
	)

	return rect
}

// Index is an R-tree over polygon bounding boxes.
type Index struct {
	tree *rtreego.Rtree
}

// New builds an empty index with the default branching factor.
func New() *Index {
	return &Index{tree: rtreego.NewTree(2, defaultBranchingFactor/5, defaultBranchingFactor)}
}

// Insert adds one entry to the index.
func (idx *Index) Insert(e Entry) {
	idx.tree.Insert(e)
}

// Query returns every indexed entry whose bounding box intersects bound.
func (idx *Index) Query(bound orb.Bound) []Entry {
	const eps = 1e-9

	width := bound.Max[0] - bound.Min[0]
	if width <= 0 {
		width = eps
	}
	height := bound.Max[1] - bound.Min[1]
	if height <= 0 {
		height = eps
	}

	rect, _ := rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{width, height},
	)

	results := idx.tree.SearchIntersect(rect)

	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(Entry))
	}

	return entries
}

// Size returns the number of entries in the index.
func (idx *Index) Size() int {
	return idx.tree.Size()
}
