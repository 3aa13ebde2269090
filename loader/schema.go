// SPDX-License-Identifier: MIT
// File: schema.go
// Role: required-column presence check (spec §4.1: "Signal fatal failure
// if ... any required column is missing"). parquet-go's GenericReader
// decodes an absent column to the field's zero value rather than erroring,
// so presence has to be checked against the schema up front.
package loader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

var requiredAddressColumns = []string{"id", "code_insee", "geom", "existing_link"}

var requiredParcelColumns = []string{"id", "code_insee", "geom"}

func validateColumns(schema *parquet.Schema, required []string) error {
	fields := schema.Fields()
	present := make(map[string]bool, len(fields))
	for _, f := range fields {
		present[f.Name()] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}
