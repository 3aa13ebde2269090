// SPDX-License-Identifier: MIT
// File: stage3.go
// Role: Stage 3 — fallback nearest, parcels-only (spec §4.4). Parallel
// over unmatched parcels, static partitioning.
package matcher

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/geom"
	"github.com/insee-ban/parcelmatch/rtree"
)

func runStage3(
	ctx context.Context,
	addresses []core.Address,
	parcels []core.Parcel,
	addrTree *rtree.Tree,
	parcelMatched []atomic.Bool,
	cfg core.Config,
) ([]core.MatchRow, int, error) {
	parts := chunks(len(parcels), cfg.NumWorkers)
	buffers := make([][]core.MatchRow, len(parts))
	unmatchedCounts := make([]int, len(parts))

	g, _ := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			buf := make([]core.MatchRow, 0, 4)
			unmatched := 0
			for pi := part.Start; pi < part.End; pi++ {
				if parcelMatched[pi].Load() {
					continue
				}
				var matched bool
				var err error
				buf, matched, err = stage3Parcel(addresses, parcels[pi], addrTree, cfg, buf)
				if err != nil {
					return err
				}
				if !matched {
					unmatched++
				}
			}
			buffers[i] = buf
			unmatchedCounts[i] = unmatched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	total := 0
	for _, c := range unmatchedCounts {
		total += c
	}
	return mergeBuffers(buffers), total, nil
}

func stage3Parcel(
	addresses []core.Address,
	p core.Parcel,
	addrTree *rtree.Tree,
	cfg core.Config,
	buf []core.MatchRow,
) ([]core.MatchRow, bool, error) {
	insideEps2 := cfg.InsideEpsM * cfg.InsideEpsM
	fallbackMax2 := cfg.FallbackMaxDistanceM * cfg.FallbackMaxDistanceM
	r0 := core.InitialFallbackRadiusM(p.AABB)

	bestD2 := math.Inf(1)
	bestAddr := -1
	var windowErr error

	addrTree.ExpandingWindow(p.AABB, r0, core.DefaultFallbackRadiusMultiple, cfg.FallbackMaxDistanceM,
		func(radius float64, items []rtree.Item) bool {
			for _, it := range items {
				if err := checkIndex(it.Index, len(addresses)); err != nil {
					windowErr = fmt.Errorf("stage3: parcel %s: %w", p.ID, err)
					return true
				}
				a := addresses[it.Index]
				d2aabb := geom.AABBPointDist2(p.AABB, a.Point)
				if d2aabb >= bestD2 {
					continue
				}
				d2, err := geom.PointToPolygonDist2(a.Point, p.Geometry, cfg.InsideEpsM)
				if err != nil {
					windowErr = fmt.Errorf("stage3: parcel %s: %w: %w", p.ID, ErrInvariantViolated, err)
					return true
				}
				if bestAddr < 0 || d2 < bestD2 || (d2 == bestD2 && a.ID < addresses[bestAddr].ID) {
					bestD2 = d2
					bestAddr = it.Index
				}
			}
			return bestAddr >= 0 && bestD2 <= radius*radius
		},
	)
	if windowErr != nil {
		return buf, false, windowErr
	}

	if bestAddr < 0 {
		return buf, false, nil
	}
	a := addresses[bestAddr]

	switch {
	case bestD2 <= insideEps2:
		buf = append(buf, core.MatchRow{
			AddressID: a.ID, ParcelID: p.ID,
			MatchType: core.Inside, DistanceM: 0.0, Confidence: 90,
		})
		return buf, true, nil
	case bestD2 <= fallbackMax2:
		buf = append(buf, core.MatchRow{
			AddressID: a.ID, ParcelID: p.ID,
			MatchType: core.FallbackNearest, DistanceM: math.Sqrt(bestD2), Confidence: 50,
		})
		return buf, true, nil
	}
	return buf, false, nil
}
