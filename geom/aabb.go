// SPDX-License-Identifier: MIT
// File: aabb.go
// Role: AABB extraction and the AABB-to-point squared-distance bound used
// by the spatial index for pruning (spec §4.2, §4.3).
package geom

import (
	"math"

	"github.com/insee-ban/parcelmatch/core"
)

// AABBOf returns the minimum enclosing axis-aligned rectangle over every
// ring of every component of g. If g has no points at all the result is
// the inverted box {+Inf, +Inf, -Inf, -Inf}; callers validate non-empty
// geometry before this is ever called (core.Parcel.Validate).
func AABBOf(g core.Geometry) core.AABB {
	box := core.AABB{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, poly := range g.Polygons {
		box = growByRing(box, poly.Outer)
		for _, hole := range poly.Inner {
			box = growByRing(box, hole)
		}
	}
	return box
}

func growByRing(box core.AABB, r core.Ring) core.AABB {
	for _, p := range r {
		if p.X < box.MinX {
			box.MinX = p.X
		}
		if p.Y < box.MinY {
			box.MinY = p.Y
		}
		if p.X > box.MaxX {
			box.MaxX = p.X
		}
		if p.Y > box.MaxY {
			box.MaxY = p.Y
		}
	}
	return box
}

// AABBPointDist2 returns the squared Euclidean distance from p to the
// closed rectangle box: 0 when p is inside or on the boundary.
func AABBPointDist2(box core.AABB, p core.Point) float64 {
	dx := 0.0
	switch {
	case p.X < box.MinX:
		dx = box.MinX - p.X
	case p.X > box.MaxX:
		dx = p.X - box.MaxX
	}
	dy := 0.0
	switch {
	case p.Y < box.MinY:
		dy = box.MinY - p.Y
	case p.Y > box.MaxY:
		dy = p.Y - box.MaxY
	}
	return dx*dx + dy*dy
}
