// SPDX-License-Identifier: MIT
// File: pip.go
// Role: boundary-inclusive point-in-polygon predicate (spec §4.2).
//
// Determinism:
//   - A point within INSIDE_EPS of any ring (outer or hole) of a
//     component is always treated as inside that component: the crossing
//     test alone is not reliable exactly on an edge, so boundary
//     proximity is checked first and short-circuits the ray cast.
package geom

import "github.com/insee-ban/parcelmatch/core"

// PointInPolygon reports whether p lies inside g (any component), within
// insideEps of the boundary counting as inside. For a multi-component
// geometry, membership in any single component is sufficient.
func PointInPolygon(p core.Point, g core.Geometry, insideEps float64) bool {
	for _, poly := range g.Polygons {
		if pointInComponent(p, poly, insideEps) {
			return true
		}
	}
	return false
}

// pointInComponent reports polygon-with-holes membership for one component.
func pointInComponent(p core.Point, poly core.Polygon, insideEps float64) bool {
	eps2 := insideEps * insideEps

	if ringDist2(p, poly.Outer) <= eps2 {
		return true // on the outer boundary
	}
	if !rayCastInside(p, poly.Outer) {
		return false // strictly outside the outer ring
	}

	for _, hole := range poly.Inner {
		if ringDist2(p, hole) <= eps2 {
			return true // on a hole's boundary: still part of the polygon
		}
		if rayCastInside(p, hole) {
			return false // strictly inside the void
		}
	}

	return true
}
