package isochrone

import (
	"container/heap"

	"isochrone/internal/roadgraph"
)

// pqItem is one entry in the Dijkstra priority queue: a node index and its
// tentative distance, grounded on pmtiles.priorityQueue's heap.Interface
// implementation.
type pqItem struct {
	node int
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// multiSourceDijkstra runs a single Dijkstra relaxation pass seeded from
// every node in starts simultaneously (distance 0 at each), returning the
// minimum walking-time (minutes) from the nearest start to every reached
// node. Nodes with distance greater than cutoffMin are not relaxed further,
// bounding the search per spec §4.D step 3.
func multiSourceDijkstra(g *roadgraph.Graph, starts []int, cutoffMin float64) []float64 {
	dist := make([]float64, g.Len())
	for i := range dist {
		dist[i] = cutoffMin + 1
	}

	pq := &priorityQueue{}
	heap.Init(pq)

	for _, s := range starts {
		if s < 0 || s >= g.Len() {
			continue
		}
		if dist[s] > 0 {
			dist[s] = 0
			heap.Push(pq, pqItem{node: s, dist: 0})
		}
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if item.dist > dist[item.node] {
			continue
		}
		if item.dist > cutoffMin {
			continue
		}

		for _, edge := range g.Neighbors(item.node) {
			next := item.dist + edge.Weight
			if next > cutoffMin {
				continue
			}
			if next < dist[edge.To] {
				dist[edge.To] = next
				heap.Push(pq, pqItem{node: edge.To, dist: next})
			}
		}
	}

	return dist
}
