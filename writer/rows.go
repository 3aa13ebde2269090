// SPDX-License-Identifier: MIT
// File: rows.go
// Role: parquet row schema for the output table (spec §6's "Output"
// column list is contractual).
package writer

// matchRow is the on-disk schema of one emitted row.
type matchRow struct {
	AddressID  string  `parquet:"id_ban"`
	ParcelID   string  `parquet:"id_parcelle"`
	MatchType  string  `parquet:"match_type"`
	DistanceM  float64 `parquet:"distance_m"`
	Confidence int32   `parquet:"confidence"`
}
