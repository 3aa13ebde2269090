// Package geom implements the planar geometry kernel used by the spatial
// index and matcher: AABB extraction, point-in-polygon, and exact
// point-to-polygon / point-to-AABB squared distances (spec.md §4.2).
//
// Every predicate operates on already-projected, metric coordinates —
// there is no reprojection or unit conversion here, and no dependency on
// a planar-geometry library: per spec §9's design note, a conforming
// kernel may ship its own primitives, which is the path taken here so
// that INSIDE_EPS tolerance on boundary points is exact and auditable in
// one small package (mirrors the teacher's bfs/dfs packages: a focused,
// dependency-free algorithm over a shared core type).
//
// All comparisons are done in squared distance; callers take the square
// root only when producing a final distance_m value (spec §4.2).
package geom
