// SPDX-License-Identifier: MIT
// File: dist.go
// Role: exact point-to-polygon squared distance (spec §4.2). Returns 0
// when the point is inside (or within insideEps of the boundary); for a
// multi-component geometry, returns the minimum over components.
package geom

import (
	"fmt"
	"math"

	"github.com/insee-ban/parcelmatch/core"
)

// PointToPolygonDist2 returns the squared Euclidean distance from p to
// the boundary of g, or 0 if p is inside any component (boundary
// inclusive, within insideEps). Returns core.ErrNegativeSquaredDistance if
// a ring distance computes negative, which correct math never produces.
func PointToPolygonDist2(p core.Point, g core.Geometry, insideEps float64) (float64, error) {
	best := math.Inf(1)
	for _, poly := range g.Polygons {
		if pointInComponent(p, poly, insideEps) {
			return 0, nil // can't do better than zero; short-circuit immediately.
		}
		d := ringDist2(p, poly.Outer)
		for _, hole := range poly.Inner {
			if dh := ringDist2(p, hole); dh < d {
				d = dh
			}
		}
		if d < 0 {
			return 0, fmt.Errorf("%w: %v", core.ErrNegativeSquaredDistance, d)
		}
		if d < best {
			best = d
		}
	}
	return best, nil
}
