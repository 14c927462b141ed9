package scorer

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isochrone/internal/aggregator"
	"isochrone/internal/isochrone"
	"isochrone/internal/roadgraph"
)

func lineGraph(t *testing.T) *roadgraph.Graph {
	t.Helper()

	const step = 0.00072

	nodes := []roadgraph.Node{
		{ID: 1, Point: orb.Point{-step, 0}},
		{ID: 2, Point: orb.Point{0, 0}},
		{ID: 3, Point: orb.Point{step, 0}},
		{ID: 4, Point: orb.Point{0, step}},
		{ID: 5, Point: orb.Point{0, -step}},
	}
	edges := []roadgraph.Edge{
		{StartID: 1, EndID: 2, LengthM: 80},
		{StartID: 2, EndID: 3, LengthM: 80},
		{StartID: 2, EndID: 4, LengthM: 80},
		{StartID: 2, EndID: 5, LengthM: 80},
	}

	nodeIter := func(yield func(roadgraph.Node) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
	edgeIter := func(yield func(roadgraph.Edge) bool) {
		for _, e := range edges {
			if !yield(e) {
				return
			}
		}
	}

	return roadgraph.Load(nodeIter, edgeIter, nil)
}

func TestWeightOf_KnownCategory(t *testing.T) {
	weight, err := WeightOf(CategoryEducation)
	require.NoError(t, err)
	assert.Equal(t, 8, weight)
}

func TestWeightOf_UnknownCategory(t *testing.T) {
	_, err := WeightOf(Category("airport"))
	assert.Error(t, err)
}

func TestScore_RejectsUnknownCategoryUpFront(t *testing.T) {
	builder := isochrone.NewBuilder(lineGraph(t))
	s := New(builder, 0)

	candidates := []aggregator.HotspotCandidate{{Center: orb.Point{0, 0}}}
	pois := []POI{{Point: orb.Point{0, 0}, Category: Category("airport")}}

	_, err := s.Score(context.Background(), candidates, pois)
	assert.Error(t, err)
}

func TestScore_FiltersBelowThreshold(t *testing.T) {
	builder := isochrone.NewBuilder(lineGraph(t))
	s := New(builder, 2)

	candidates := []aggregator.HotspotCandidate{{Center: orb.Point{0, 0}}}
	pois := []POI{{Point: orb.Point{0.0001, 0.0001}, Category: CategoryPower}}

	results, err := s.Score(context.Background(), candidates, pois)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScore_ReportsAndRanksAboveThreshold(t *testing.T) {
	builder := isochrone.NewBuilder(lineGraph(t))
	s := New(builder, 2)

	candidates := []aggregator.HotspotCandidate{{Center: orb.Point{0, 0}}}
	pois := []POI{
		{Point: orb.Point{0.0001, 0.0001}, Category: CategoryRailwayStation},
		{Point: orb.Point{-0.0001, 0.0001}, Category: CategoryBusinessCenter},
	}

	results, err := s.Score(context.Background(), candidates, pois)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rank)
}
