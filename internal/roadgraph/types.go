// Package roadgraph builds and owns the process-wide road network graph:
// an immutable adjacency list over walking-time edge weights plus a
// quadtree nearest-neighbor index over node coordinates (component C).
package roadgraph

import "github.com/paulmach/orb"

// WalkingSpeedMPerMin is the fixed pedestrian speed used to derive edge
// travel time from edge length, per spec §3.
const WalkingSpeedMPerMin = 80.0

// Node is a road network vertex. Identity is ID; Point is (lon, lat).
type Node struct {
	ID    uint64
	Point orb.Point
}

// Edge is an undirected road segment between two node IDs.
type Edge struct {
	StartID uint64
	EndID   uint64
	LengthM float64
}

// TimeMin returns the walking time in minutes for this edge's length.
func (e Edge) TimeMin() float64 {
	return e.LengthM / WalkingSpeedMPerMin
}

// NodeIterator is a read-only source of road nodes, the only node input
// the core consumes from the (out-of-scope) relational store.
type NodeIterator func(yield func(Node) bool)

// EdgeIterator is the edge counterpart of NodeIterator.
type EdgeIterator func(yield func(Edge) bool)

// NeighborEdge is one adjacency-list entry: a destination node index and
// its time_min weight.
type NeighborEdge struct {
	To     int
	Weight float64
}
