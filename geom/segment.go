// SPDX-License-Identifier: MIT
// File: segment.go
// Role: private segment-distance and ray-crossing helpers shared by pip.go
// and dist.go.
package geom

import "github.com/insee-ban/parcelmatch/core"

// segPointDist2 returns the squared distance from p to the closed segment a-b.
func segPointDist2(p, a, b core.Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	wx, wy := p.X-a.X, p.Y-a.Y

	segLen2 := vx*vx + vy*vy
	if segLen2 == 0 {
		// a == b: the "segment" is a point.
		return wx*wx + wy*wy
	}

	t := (wx*vx + wy*vy) / segLen2
	switch {
	case t < 0:
		return wx*wx + wy*wy
	case t > 1:
		dx, dy := p.X-b.X, p.Y-b.Y
		return dx*dx + dy*dy
	default:
		projX, projY := a.X+t*vx, a.Y+t*vy
		dx, dy := p.X-projX, p.Y-projY
		return dx*dx + dy*dy
	}
}

// ringDist2 returns the minimum squared distance from p to any segment of
// ring r. r is assumed closed (r[0] == r[len-1]); every consecutive pair
// is one edge.
func ringDist2(p core.Point, r core.Ring) float64 {
	best := segPointDist2(p, r[0], r[1])
	for i := 1; i < len(r)-1; i++ {
		if d := segPointDist2(p, r[i], r[i+1]); d < best {
			best = d
		}
	}
	return best
}

// rayCastInside reports whether p is strictly inside ring r using the
// standard even-odd crossing-number test. Boundary points are handled by
// the caller via ringDist2 before this is consulted — this function alone
// is not boundary-safe (a point exactly on an edge may land on either
// side depending on floating-point rounding of the crossing test).
func rayCastInside(p core.Point, r core.Ring) bool {
	inside := false
	n := len(r) - 1 // ignore the duplicated closing point
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := r[i], r[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xCross := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
