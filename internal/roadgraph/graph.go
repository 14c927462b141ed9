package roadgraph

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// indexedPoint adapts a node's coordinate and dense index to orb.Pointer so
// it can live in the quadtree.
type indexedPoint struct {
	point orb.Point
	index int
}

func (p indexedPoint) Point() orb.Point { return p.point }

// Graph is the immutable, process-wide road network: a dense adjacency
// list keyed by node index plus a quadtree nearest-neighbor index over
// node coordinates. Construct once via Load; never mutated after that,
// matching spec §3's RoadGraph lifecycle and §5's no-lock-after-Ready
// sharing policy.
type Graph struct {
	nodes    []Node
	idToIdx  map[uint64]int
	adj      [][]NeighborEdge
	tree     *quadtree.Quadtree
	droppedN int
	droppedE int
}

// Load builds a Graph from one pass over nodes and one pass over edges.
// Nodes with unparseable coordinates are never produced by NodeIterator in
// the first place (that's the loader's job); edges whose endpoints are
// missing from the node set are silently dropped here, with a single
// warning logged on completion, per spec §4.C.
func Load(nodeIter NodeIterator, edgeIter EdgeIterator, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Graph{
		idToIdx: make(map[uint64]int),
	}

	nodeIter(func(n Node) bool {
		if math.IsNaN(n.Point[0]) || math.IsNaN(n.Point[1]) {
			g.droppedN++

			return true
		}
		g.idToIdx[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)

		return true
	})

	g.adj = make([][]NeighborEdge, len(g.nodes))

	edgeIter(func(e Edge) bool {
		startIdx, startOK := g.idToIdx[e.StartID]
		endIdx, endOK := g.idToIdx[e.EndID]
		if !startOK || !endOK || e.LengthM <= 0 {
			g.droppedE++

			return true
		}

		weight := e.TimeMin()
		g.adj[startIdx] = append(g.adj[startIdx], NeighborEdge{To: endIdx, Weight: weight})
		g.adj[endIdx] = append(g.adj[endIdx], NeighborEdge{To: startIdx, Weight: weight})

		return true
	})

	g.buildIndex()

	logger.Warn("road graph loaded",
		"nodes", len(g.nodes),
		"dropped_nodes", g.droppedN,
		"dropped_edges", g.droppedE,
	)

	return g
}

func (g *Graph) buildIndex() {
	if len(g.nodes) == 0 {
		return
	}

	bound := orb.Bound{Min: g.nodes[0].Point, Max: g.nodes[0].Point}
	for _, n := range g.nodes[1:] {
		bound = bound.Extend(n.Point)
	}

	// A quadtree built over a degenerate (zero-area) bound rejects
	// every insert; pad it so a single-node or colinear graph still
	// indexes.
	bound = bound.Pad(1e-9)

	tree := quadtree.New(bound)
	for idx, n := range g.nodes {
		_ = tree.Add(indexedPoint{point: n.Point, index: idx})
	}

	g.tree = tree
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodePoint returns the coordinate of the node at the given dense index.
func (g *Graph) NodePoint(idx int) orb.Point {
	return g.nodes[idx].Point
}

// NodeID returns the external node_id of the node at the given dense index.
func (g *Graph) NodeID(idx int) uint64 {
	return g.nodes[idx].ID
}

// NearestNode finds the nearest graph node to (lon, lat), returning its
// dense index. Returns (0, false) only when the graph has zero nodes, per
// spec §4.C.
func (g *Graph) NearestNode(p orb.Point) (int, bool) {
	if g.tree == nil || len(g.nodes) == 0 {
		return 0, false
	}

	found := g.tree.Find(p)
	if found == nil {
		return 0, false
	}

	return found.(indexedPoint).index, true
}

// Neighbors returns the adjacency list entries for the node at idx.
func (g *Graph) Neighbors(idx int) []NeighborEdge {
	if idx < 0 || idx >= len(g.adj) {
		return nil
	}

	return g.adj[idx]
}
