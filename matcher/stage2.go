// SPDX-License-Identifier: MIT
// File: stage2.go
// Role: Stage 2 — address-centric border rescue (spec §4.4). Parallel
// over addresses, static partitioning.
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

func runStage2(
	ctx context.Context,
	addresses []core.Address,
	parcels []core.Parcel,
	parcelTree *rtree.Tree,
	parcelMatched []atomic.Bool,
	cfg core.Config,
) ([]core.MatchRow, error) {
	parts := chunks(len(addresses), cfg.NumWorkers)
	buffers := make([][]core.MatchRow, len(parts))

	g, _ := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			buf := make([]core.MatchRow, 0, 16)
			for ai := part.Start; ai < part.End; ai++ {
				var err error
				buf, err = stage2Address(addresses[ai], parcels, parcelTree, parcelMatched, cfg, buf)
				if err != nil {
					return err
				}
			}
			buffers[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeBuffers(buffers), nil
}

func stage2Address(
	a core.Address,
	parcels []core.Parcel,
	parcelTree *rtree.Tree,
	parcelMatched []atomic.Bool,
	cfg core.Config,
	buf []core.MatchRow,
) ([]core.MatchRow, error) {
	insideEps2 := cfg.InsideEpsM * cfg.InsideEpsM
	addrMax2 := cfg.AddressMaxDistanceM * cfg.AddressMaxDistanceM

	bestD2 := addrMax2
	bestParcel := -1
	var walkErr error

	parcelTree.NearestWalk(a.Point, addrMax2, func(it rtree.Item, best2 float64) float64 {
		if walkErr != nil {
			return best2
		}
		if err := checkIndex(it.Index, len(parcels)); err != nil {
			walkErr = fmt.Errorf("stage2: address %s: %w", a.ID, err)
			return best2
		}
		q := parcels[it.Index]
		d2, err := geom.PointToPolygonDist2(a.Point, q.Geometry, cfg.InsideEpsM)
		if err != nil {
			walkErr = fmt.Errorf("stage2: address %s: %w: %w", a.ID, ErrInvariantViolated, err)
			return best2
		}
		if d2 <= insideEps2 || d2 > addrMax2 {
			return best2
		}
		if bestParcel < 0 || d2 < bestD2 || (d2 == bestD2 && q.ID < parcels[bestParcel].ID) {
			bestD2 = d2
			bestParcel = it.Index
		}
		return bestD2
	})
	if walkErr != nil {
		return buf, walkErr
	}

	if bestParcel < 0 {
		return buf, nil
	}

	q := parcels[bestParcel]
	dist := math.Sqrt(bestD2)
	confidence := 70
	if dist < 5 {
		confidence = 80
	}
	buf = append(buf, core.MatchRow{
		AddressID: a.ID, ParcelID: q.ID,
		MatchType: core.BorderNear, DistanceM: dist, Confidence: confidence,
	})
	parcelMatched[bestParcel].Store(true)
	return buf, nil
}
