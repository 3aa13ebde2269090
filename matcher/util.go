// SPDX-License-Identifier: MIT
// File: util.go
// Role: small shared helpers used by more than one stage.
package matcher

import (
	"fmt"
	"sort"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/rtree"
)

// checkIndex guards every rtree.Item.Index dereference against its
// backing entity slice. A tripped check means the index built into the
// tree and the slice it indexes into have drifted apart: a bug, not a
// possible outcome of malformed input.
func checkIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("%w: %w: index %d out of range [0,%d)", ErrInvariantViolated, core.ErrIndexOutOfRange, idx, n)
	}
	return nil
}

// sortItemsByIndex sorts in place by Item.Index ascending. Range returns
// items in tree traversal order; spec §4.4 step 2 requires address-index
// order for determinism.
func sortItemsByIndex(items []rtree.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].Index < items[j].Index })
}

// mergeBuffers concatenates per-worker buffers in chunk order, which is
// entity-index order because chunks() hands out contiguous ascending
// ranges.
func mergeBuffers(buffers [][]core.MatchRow) []core.MatchRow {
	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	out := make([]core.MatchRow, 0, total)
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}
