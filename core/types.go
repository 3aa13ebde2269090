// SPDX-License-Identifier: MIT
// File: types.go
// Role: shared entity and value types for the matching engine — Point,
// AABB, Geometry (polygon/multipolygon), Address, Parcel, and the
// match-row variant. The engine-wide Config lives in config.go.
//
// Determinism:
//   - AddressIndex and ParcelIndex are plain position indices into the
//     slices produced by the loader; they are stable for the lifetime of
//     one run and never renumbered.
//
// Concurrency:
//   - Every type here is a plain value or an immutable-after-construction
//     struct. None carries a mutex: the loader builds them single-threaded
//     before the matcher starts, and the matcher only ever reads them
//     concurrently afterwards (see matcher.Run).
package core

import "math"

// Point is a planar coordinate in the working metric reference frame.
type Point struct {
	X, Y float64
}

// finite reports whether both coordinates of p are finite (no NaN/Inf).
func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// AABB is an axis-aligned bounding box, min/max inclusive.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies within the closed rectangle.
func (b AABB) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Expand returns b grown by r meters on every side.
func (b AABB) Expand(r float64) AABB {
	return AABB{MinX: b.MinX - r, MinY: b.MinY - r, MaxX: b.MaxX + r, MaxY: b.MaxY + r}
}

// Union returns the smallest AABB enclosing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// MaxSide returns the longer of the box's width and height.
func (b AABB) MaxSide() float64 {
	return math.Max(b.MaxX-b.MinX, b.MaxY-b.MinY)
}

// Intersects reports whether b and o overlap (touching counts as overlap).
func (b AABB) Intersects(o AABB) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Ring is a closed sequence of points (Ring[0] == Ring[len-1]); the
// winding direction is not contractual — geom.PointInPolygon is
// orientation-agnostic.
type Ring []Point

// closed reports whether the first and last points coincide exactly.
func (r Ring) closed() bool {
	if len(r) < 2 {
		return false
	}
	first, last := r[0], r[len(r)-1]
	return first.X == last.X && first.Y == last.Y
}

// Polygon is one outer ring plus zero or more inner (hole) rings.
type Polygon struct {
	Outer Ring
	Inner []Ring
}

// Geometry is one polygon (len(Polygons) == 1) or a multipolygon
// (len(Polygons) > 1); every component is independently ring-closed.
type Geometry struct {
	Polygons []Polygon
}

// Address is a BAN point entity (spec §3).
type Address struct {
	ID           string
	CodeINSEE    string
	Point        Point
	ExistingLink []string // parcel ids asserted as pre-existing references
}

// Parcel is a cadastral polygon entity (spec §3). AABB is derived at load
// time and cached; it never needs recomputation during matching.
type Parcel struct {
	ID        string
	CodeINSEE string
	Geometry  Geometry
	AABB      AABB
}

// AddressIndex is a position into the loader's address slice.
type AddressIndex int

// ParcelIndex is a position into the loader's parcel slice.
type ParcelIndex int

// MatchType is a tagged variant, not a hierarchy (spec §9 design note).
// Ordinal value matches the priority order external QA consumers rely on:
// PreExisting < Inside < BorderNear < FallbackNearest.
type MatchType int

const (
	PreExisting MatchType = iota
	Inside
	BorderNear
	FallbackNearest
)

// String renders the wire value used in the match_type output column.
func (m MatchType) String() string {
	switch m {
	case PreExisting:
		return "PreExisting"
	case Inside:
		return "Inside"
	case BorderNear:
		return "BorderNear"
	case FallbackNearest:
		return "FallbackNearest"
	default:
		return "Unknown"
	}
}

// MatchRow is one emitted association (spec §3).
type MatchRow struct {
	AddressID  string
	ParcelID   string
	MatchType  MatchType
	DistanceM  float64
	Confidence int
}
