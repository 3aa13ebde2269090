// Package loader reads the addresses and parcels parquet tables named in
// spec.md §6 into the dense, position-indexed core.Address/core.Parcel
// slices the matcher consumes (spec §4.1).
//
// Geometry arrives WKB-encoded in the geom column; loader decodes it via
// github.com/twpayne/go-geom's wkb codec into core's plain coordinate
// types, so nothing downstream of the loader depends on a geometry
// library. Loader is fatal-on-error (spec §4.1, §7): any malformed row
// aborts the whole load before any row reaches the matcher.
package loader
