// SPDX-License-Identifier: MIT
// File: errors.go
// Role: sentinel errors for the core package, classified per the error
// kinds in spec.md §7 (InputMalformed, InternalInvariantViolated).
//
// Error policy (same as the teacher corpus): only sentinel variables are
// exported; callers branch with errors.Is. Sentinels are never wrapped
// with formatted strings at definition site — call sites attach entity
// id / stage / cause context with %w.
package core

import "errors"

// InputMalformed class (spec §7): fatal, reported before any emission.
var (
	// ErrEmptyID indicates an Address or Parcel was decoded with an empty ID.
	ErrEmptyID = errors.New("core: entity id is empty")

	// ErrNonFiniteCoordinate indicates a NaN or Inf coordinate in a point or ring.
	ErrNonFiniteCoordinate = errors.New("core: coordinate is not finite")

	// ErrEmptyGeometry indicates a Parcel with no rings at all.
	ErrEmptyGeometry = errors.New("core: geometry is empty")

	// ErrOpenRing indicates a polygon ring whose first and last points do not coincide.
	ErrOpenRing = errors.New("core: polygon ring is not closed")

	// ErrDegenerateRing indicates an outer ring with fewer than 3 distinct vertices
	// or zero enclosed area.
	ErrDegenerateRing = errors.New("core: polygon ring is degenerate")
)

// InternalInvariantViolated class (spec §7): fatal, indicates a bug.
var (
	// ErrNegativeSquaredDistance indicates a geometry predicate returned a
	// negative squared distance, which cannot happen under correct math.
	ErrNegativeSquaredDistance = errors.New("core: negative squared distance")

	// ErrIndexOutOfRange indicates a spatial-index item index fell outside
	// the bounds of its backing entity slice.
	ErrIndexOutOfRange = errors.New("core: item index out of range")
)
