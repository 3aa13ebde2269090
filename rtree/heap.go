// SPDX-License-Identifier: MIT
// File: heap.go
// Role: min-heap of pending tree nodes keyed by aabb_point_dist2, in the
// same container/heap + private slice-type idiom as the teacher's
// dijkstra package (nodePQ).
package rtree

// entry pairs a pending node with its AABB-to-query-point squared
// distance, the priority the best-first walk orders by.
type entry struct {
	dist2 float64
	n     *node
}

// entryPQ is a min-heap of entry, ordered by dist2 ascending.
type entryPQ []entry

func (pq entryPQ) Len() int            { return len(pq) }
func (pq entryPQ) Less(i, j int) bool  { return pq[i].dist2 < pq[j].dist2 }
func (pq entryPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *entryPQ) Push(x interface{}) { *pq = append(*pq, x.(entry)) }
func (pq *entryPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
