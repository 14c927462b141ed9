package graphinit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"isochrone/internal/roadgraph"
)

func emptyGraph() *roadgraph.Graph {
	return roadgraph.Load(func(func(roadgraph.Node) bool) {}, func(func(roadgraph.Edge) bool) {}, nil)
}

func TestHandle_StartsUninit(t *testing.T) {
	h := New()

	assert.Equal(t, Uninit, h.State())
	assert.False(t, h.IsReady())
}

func TestHandle_LoadTransitionsToReady(t *testing.T) {
	h := New()

	h.Load(emptyGraph)

	assert.Equal(t, Ready, h.State())
	assert.True(t, h.IsReady())

	g, ok := h.Graph()
	assert.True(t, ok)
	assert.NotNil(t, g)
}

func TestHandle_SecondLoadIsNoOp(t *testing.T) {
	h := New()
	calls := 0

	build := func() *roadgraph.Graph {
		calls++

		return emptyGraph()
	}

	h.Load(build)
	h.Load(build)

	assert.Equal(t, 1, calls)
}

func TestHandle_ConcurrentLoadCallsOnlyBuildOnce(t *testing.T) {
	h := New()
	var calls int32
	var mu sync.Mutex

	build := func() *roadgraph.Graph {
		mu.Lock()
		calls++
		mu.Unlock()

		return emptyGraph()
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Load(build)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int32(1), calls)
	assert.True(t, h.IsReady())
}
