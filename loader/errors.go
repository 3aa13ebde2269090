// SPDX-License-Identifier: MIT
// File: errors.go
// Role: sentinel errors for the loader package's fatal-failure conditions
// (spec §4.1, error kind InputMalformed / IOError per §7).
package loader

import "errors"

// ErrReadFailed wraps any parquet read error (IOError class).
var ErrReadFailed = errors.New("loader: read failed")

// ErrMissingColumn indicates a required column was absent from the schema.
var ErrMissingColumn = errors.New("loader: required column missing")

// ErrUnsupportedGeometry indicates a geom column decoded to a WKB type
// other than the one expected for that table (point for addresses,
// polygon/multipolygon for parcels).
var ErrUnsupportedGeometry = errors.New("loader: unsupported geometry type")
