// SPDX-License-Identifier: MIT
// File: validate.go
// Role: entity-level validation invoked by the loader at decode time
// (spec §4.1's fatal-failure conditions). Kept in core so that both the
// loader and any future producer of Address/Parcel values share exactly
// one definition of "valid".
package core

import "fmt"

// Validate checks an Address against spec §3's invariants: non-empty id,
// finite point. ExistingLink entries are not validated here — Stage 1
// rejects dangling references by construction (a missing parcel id
// simply never matches any p.ID).
func (a Address) Validate() error {
	if a.ID == "" {
		return ErrEmptyID
	}
	if !a.Point.finite() {
		return fmt.Errorf("address %s: %w", a.ID, ErrNonFiniteCoordinate)
	}
	return nil
}

// Validate checks a Parcel against spec §3/§4.1's invariants: non-empty
// id, non-empty geometry, closed outer rings, finite coordinates, and
// positive area (a degenerate outer ring encloses no area).
func (p Parcel) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if len(p.Geometry.Polygons) == 0 {
		return fmt.Errorf("parcel %s: %w", p.ID, ErrEmptyGeometry)
	}
	for _, poly := range p.Geometry.Polygons {
		if err := validateRing(p.ID, poly.Outer, true); err != nil {
			return err
		}
		for _, hole := range poly.Inner {
			if err := validateRing(p.ID, hole, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRing(parcelID string, r Ring, outer bool) error {
	kind := "inner"
	if outer {
		kind = "outer"
	}
	if len(r) == 0 {
		return fmt.Errorf("parcel %s: %s ring: %w", parcelID, kind, ErrEmptyGeometry)
	}
	if !r.closed() {
		return fmt.Errorf("parcel %s: %s ring: %w", parcelID, kind, ErrOpenRing)
	}
	for _, pt := range r {
		if !pt.finite() {
			return fmt.Errorf("parcel %s: %s ring: %w", parcelID, kind, ErrNonFiniteCoordinate)
		}
	}
	if outer {
		// Twice the shoelace area; zero for collinear or repeated vertices.
		area2 := 0.0
		for i := 0; i+1 < len(r); i++ {
			area2 += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
		}
		if countDistinct(r) < 3 || area2 == 0 {
			return fmt.Errorf("parcel %s: %s ring: %w", parcelID, kind, ErrDegenerateRing)
		}
	}
	return nil
}

// countDistinct counts distinct vertices in a closed ring, ignoring the
// repeated closing point.
func countDistinct(r Ring) int {
	if len(r) == 0 {
		return 0
	}
	body := r[:len(r)-1]
	seen := make(map[Point]struct{}, len(body))
	for _, p := range body {
		seen[p] = struct{}{}
	}
	return len(seen)
}
