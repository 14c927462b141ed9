package spatialindex

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestIndex_QueryFindsOverlapping(t *testing.T) {
	idx := New()
	idx.Insert(Entry{ID: 1, Bound: orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}})
	idx.Insert(Entry{ID: 2, Bound: orb.Bound{Min: orb.Point{100, 100}, Max: orb.Point{110, 110}}})

	results := idx.Query(orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{15, 15}})

	ids := make([]int, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}

	assert.Contains(t, ids, 1)
	assert.NotContains(t, ids, 2)
}

func TestIndex_Size(t *testing.T) {
	idx := New()
	idx.Insert(Entry{ID: 1, Bound: orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}})
	idx.Insert(Entry{ID: 2, Bound: orb.Bound{Min: orb.Point{2, 2}, Max: orb.Point{3, 3}}})

	assert.Equal(t, 2, idx.Size())
}
