// SPDX-License-Identifier: MIT
// File: tree.go
// Role: Item/node types and the STR (Sort-Tile-Recursive) bulk-load build.
//
// Determinism:
//   - Build is a pure function of the input Item slice and fan-out: same
//     input order, same tree shape, every run. Sorts use sort.SliceStable
//     so equal-coordinate ties never reorder nondeterministically.
package rtree

import (
	"math"
	"sort"

	"github.com/insee-ban/parcelmatch/core"
)

// DefaultFanout is the suggested leaf/internal fan-out from spec §4.3.
const DefaultFanout = 16

// Item is one entry in the index: a bare item index and its AABB. The
// index refers back into the caller's entity slice (AddressIndex or
// ParcelIndex); the tree never holds geometry or entity pointers.
type Item struct {
	Index int
	Box   core.AABB
}

// node is an internal STR tree node: either a leaf holding Items, or an
// internal node holding child nodes. Exactly one of items/children is set.
type node struct {
	box      core.AABB
	items    []Item
	children []*node
}

func (n *node) isLeaf() bool { return n.items != nil }

// Tree is a static, bulk-loaded R-tree over a fixed Item set.
type Tree struct {
	root   *node
	fanout int
	size   int
}

// Build bulk-loads a Tree over items using the Sort-Tile-Recursive
// strategy with the given fan-out (falls back to DefaultFanout if
// fanout <= 0). Build does not retain items past copying each Item value
// into the tree's own leaf storage.
func Build(items []Item, fanout int) *Tree {
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	t := &Tree{fanout: fanout, size: len(items)}
	if len(items) == 0 {
		t.root = &node{box: core.AABB{}, items: []Item{}}
		return t
	}

	leaves := packLeaves(items, fanout)
	level := leaves
	for len(level) > 1 {
		level = packInternal(level, fanout)
	}
	t.root = level[0]
	return t
}

// Size returns the number of items the tree was built over.
func (t *Tree) Size() int { return t.size }

// packLeaves groups items into leaf nodes using a two-phase STR pack:
// sort by center-X into vertical slices sized so each slice holds
// roughly sqrt(leafCount) leaves, then sort each slice by center-Y and
// cut into fan-out sized leaves.
func packLeaves(items []Item, fanout int) []*node {
	cp := make([]Item, len(items))
	copy(cp, items)

	leafCount := ceilDiv(len(cp), fanout)
	sliceCount := int(math.Ceil(math.Sqrt(float64(leafCount))))
	if sliceCount < 1 {
		sliceCount = 1
	}
	sliceSize := sliceCount * fanout

	sort.SliceStable(cp, func(i, j int) bool { return centerX(cp[i].Box) < centerX(cp[j].Box) })

	leaves := make([]*node, 0, leafCount)
	for i := 0; i < len(cp); i += sliceSize {
		end := min(i+sliceSize, len(cp))
		slice := cp[i:end]
		sort.SliceStable(slice, func(a, b int) bool { return centerY(slice[a].Box) < centerY(slice[b].Box) })

		for j := 0; j < len(slice); j += fanout {
			e := min(j+fanout, len(slice))
			group := make([]Item, e-j)
			copy(group, slice[j:e])
			leaves = append(leaves, &node{box: unionItemBoxes(group), items: group})
		}
	}
	return leaves
}

// packInternal groups a level of nodes into parent nodes the same way
// packLeaves groups items, one level up.
func packInternal(level []*node, fanout int) []*node {
	cp := make([]*node, len(level))
	copy(cp, level)

	parentCount := ceilDiv(len(cp), fanout)
	sliceCount := int(math.Ceil(math.Sqrt(float64(parentCount))))
	if sliceCount < 1 {
		sliceCount = 1
	}
	sliceSize := sliceCount * fanout

	sort.SliceStable(cp, func(i, j int) bool { return centerX(cp[i].box) < centerX(cp[j].box) })

	parents := make([]*node, 0, parentCount)
	for i := 0; i < len(cp); i += sliceSize {
		end := min(i+sliceSize, len(cp))
		slice := cp[i:end]
		sort.SliceStable(slice, func(a, b int) bool { return centerY(slice[a].box) < centerY(slice[b].box) })

		for j := 0; j < len(slice); j += fanout {
			e := min(j+fanout, len(slice))
			group := make([]*node, e-j)
			copy(group, slice[j:e])
			parents = append(parents, &node{box: unionNodeBoxes(group), children: group})
		}
	}
	return parents
}

func centerX(b core.AABB) float64 { return (b.MinX + b.MaxX) / 2 }
func centerY(b core.AABB) float64 { return (b.MinY + b.MaxY) / 2 }

func unionItemBoxes(items []Item) core.AABB {
	box := items[0].Box
	for _, it := range items[1:] {
		box = box.Union(it.Box)
	}
	return box
}

func unionNodeBoxes(nodes []*node) core.AABB {
	box := nodes[0].box
	for _, n := range nodes[1:] {
		box = box.Union(n.box)
	}
	return box
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
