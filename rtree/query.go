// SPDX-License-Identifier: MIT
// File: query.go
// Role: the three query modes spec §4.3 names — range, best-first nearest
// walk, and expanding-window.
package rtree

import (
	"container/heap"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/geom"
)

// Range returns every item whose AABB intersects query, in traversal
// order (not distance order), per spec §4.3.
func (t *Tree) Range(query core.AABB) []Item {
	var out []Item
	t.rangeWalk(t.root, query, &out)
	return out
}

func (t *Tree) rangeWalk(n *node, query core.AABB, out *[]Item) {
	if n == nil || !n.box.Intersects(query) {
		return
	}
	if n.isLeaf() {
		for _, it := range n.items {
			if it.Box.Intersects(query) {
				*out = append(*out, it)
			}
		}
		return
	}
	for _, c := range n.children {
		t.rangeWalk(c, query, out)
	}
}

// NearestWalk performs a best-first descent from query, starting with
// bound initialBest2 (spec §4.3). For every candidate item whose AABB is
// within the current bound, visit is called with the item and the
// current bound; visit returns the (possibly tightened) bound to use for
// the rest of the walk. The walk stops once the heap's closest pending
// node exceeds the current bound — no further candidate can improve on
// it.
func (t *Tree) NearestWalk(query core.Point, initialBest2 float64, visit func(it Item, best2 float64) float64) {
	if t.root == nil || len(t.root.items) == 0 && len(t.root.children) == 0 {
		return
	}

	pq := make(entryPQ, 0, 16)
	heap.Init(&pq)
	heap.Push(&pq, entry{dist2: geom.AABBPointDist2(t.root.box, query), n: t.root})

	best2 := initialBest2
	for pq.Len() > 0 {
		if pq[0].dist2 > best2 {
			break
		}
		top := heap.Pop(&pq).(entry)

		if top.n.isLeaf() {
			for _, it := range top.n.items {
				d := geom.AABBPointDist2(it.Box, query)
				if d > best2 {
					continue
				}
				best2 = visit(it, best2)
			}
			continue
		}
		for _, c := range top.n.children {
			d := geom.AABBPointDist2(c.box, query)
			if d <= best2 {
				heap.Push(&pq, entry{dist2: d, n: c})
			}
		}
	}
}

// ExpandingWindow repeatedly ranges an expanding window around center,
// starting at initialRadius and multiplying by multiplier each round,
// calling visit with the current radius and the items newly visible in
// that round's window (items already seen in an earlier, smaller window
// are not re-delivered). visit returns true to stop the search.
// ExpandingWindow itself stops once the radius exceeds maxRadius.
func (t *Tree) ExpandingWindow(center core.AABB, initialRadius, multiplier, maxRadius float64, visit func(radius float64, items []Item) bool) {
	seen := make(map[int]bool)
	r := initialRadius
	for {
		window := center.Expand(r)
		all := t.Range(window)
		fresh := all[:0:0]
		for _, it := range all {
			if seen[it.Index] {
				continue
			}
			seen[it.Index] = true
			fresh = append(fresh, it)
		}
		if visit(r, fresh) {
			return
		}
		if r > maxRadius {
			return
		}
		r *= multiplier
	}
}
