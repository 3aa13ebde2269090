// SPDX-License-Identifier: MIT
// File: types.go
// Role: the matcher's own interfaces and result type. Sink decouples the
// matcher from any particular output format; writer.Writer satisfies it.
package matcher

import "github.com/insee-ban/parcelmatch/core"

// Sink accepts a batch of emitted rows. Implementations must be safe to
// call once per stage, in order; Run never calls Write concurrently.
type Sink interface {
	Write(rows []core.MatchRow) error
}

// Summary is the bookkeeping a run accumulates on top of the emitted
// rows themselves (SPEC_FULL §B.1).
type Summary struct {
	PreExisting      int
	Inside           int
	BorderNear       int
	FallbackNearest  int
	ParcelsUnmatched int
	ElapsedSeconds   float64
}

// Total returns the number of rows emitted across every stage.
func (s Summary) Total() int {
	return s.PreExisting + s.Inside + s.BorderNear + s.FallbackNearest
}

func (s *Summary) record(rows []core.MatchRow) {
	for _, r := range rows {
		switch r.MatchType {
		case core.PreExisting:
			s.PreExisting++
		case core.Inside:
			s.Inside++
		case core.BorderNear:
			s.BorderNear++
		case core.FallbackNearest:
			s.FallbackNearest++
		}
	}
}

// chunk is a contiguous, half-open index range [Start, End) assigned to
// one worker; static partitioning per spec §5.
type chunk struct {
	Start, End int
}

// chunks splits [0, n) into at most numWorkers contiguous, roughly equal
// ranges, in ascending order. Merging worker output in chunk order
// reproduces entity-index order without an explicit sort.
func chunks(n, numWorkers int) []chunk {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers == 0 {
		return nil
	}
	base := n / numWorkers
	rem := n % numWorkers
	out := make([]chunk, 0, numWorkers)
	start := 0
	for i := 0; i < numWorkers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		out = append(out, chunk{Start: start, End: start + size})
		start += size
	}
	return out
}
