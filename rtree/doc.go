// Package rtree implements the static, bulk-loaded spatial index used by
// the matcher (spec.md §4.3): a two-phase Sort-Tile-Recursive (STR) pack
// over a fixed set of AABBs, queried by range intersection, best-first
// nearest-neighbor walk, and expanding-window search.
//
// The index never owns geometry: every leaf entry is an Item, a bare
// (Index, AABB) pair pointing back into the caller's entity slice. This
// mirrors the teacher's own-algorithm packages (bfs/dfs/dijkstra): a
// small, dependency-free package built around container/heap, because
// the best-first walk here needs a custom distance key
// (geom.AABBPointDist2) and caller-tightened bound that no pack library's
// public API exposes (see DESIGN.md for why dhconnelly/rtreego, present
// in the retrieval pack, was not used for this piece).
package rtree
