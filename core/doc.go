// Package core defines the shared entities of the parcel/address matching
// engine — Address, Parcel, Point, AABB, the match-row variant, and the
// engine's runtime configuration — along with the sentinel errors used to
// classify failures per the error kinds in spec.md §7.
//
// All entities are immutable once loaded: a department's addresses and
// parcels are decoded into dense, position-indexed slices
// (AddressIndex/ParcelIndex) by the loader package and never mutated
// again. The matcher package borrows these slices read-only; geometry
// and spatial-index code import core for the entity and geometry types
// but never construct or mutate them.
package core
