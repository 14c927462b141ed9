package roadgraph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticNodes(nodes []Node) NodeIterator {
	return func(yield func(Node) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
}

func staticEdges(edges []Edge) EdgeIterator {
	return func(yield func(Edge) bool) {
		for _, e := range edges {
			if !yield(e) {
				return
			}
		}
	}
}

func TestLoad_BuildsAdjacencyBothDirections(t *testing.T) {
	nodes := []Node{
		{ID: 1, Point: orb.Point{0, 0}},
		{ID: 2, Point: orb.Point{0, 0.001}},
	}
	edges := []Edge{
		{StartID: 1, EndID: 2, LengthM: 80},
	}

	g := Load(staticNodes(nodes), staticEdges(edges), nil)

	require.Equal(t, 2, g.Len())

	neighbors1 := g.Neighbors(0)
	require.Len(t, neighbors1, 1)
	assert.Equal(t, 1, neighbors1[0].To)
	assert.InDelta(t, 1.0, neighbors1[0].Weight, 1e-9)

	neighbors2 := g.Neighbors(1)
	require.Len(t, neighbors2, 1)
	assert.Equal(t, 0, neighbors2[0].To)
}

func TestLoad_DropsEdgesWithUnknownEndpoints(t *testing.T) {
	nodes := []Node{{ID: 1, Point: orb.Point{0, 0}}}
	edges := []Edge{{StartID: 1, EndID: 99, LengthM: 10}}

	g := Load(staticNodes(nodes), staticEdges(edges), nil)

	assert.Equal(t, 1, g.droppedE)
	assert.Empty(t, g.Neighbors(0))
}

func TestGraph_NearestNode(t *testing.T) {
	nodes := []Node{
		{ID: 1, Point: orb.Point{0, 0}},
		{ID: 2, Point: orb.Point{1, 1}},
		{ID: 3, Point: orb.Point{10, 10}},
	}

	g := Load(staticNodes(nodes), staticEdges(nil), nil)

	idx, ok := g.NearestNode(orb.Point{0.9, 0.9})
	require.True(t, ok)
	assert.Equal(t, uint64(2), g.NodeID(idx))
}

func TestGraph_NearestNode_EmptyGraph(t *testing.T) {
	g := Load(staticNodes(nil), staticEdges(nil), nil)

	_, ok := g.NearestNode(orb.Point{0, 0})
	assert.False(t, ok)
}
