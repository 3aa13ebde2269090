// SPDX-License-Identifier: MIT
// File: stage1.go
// Role: Stage 1 — parcel-centric pre-existing links and containment
// (spec §4.4). Parallel over parcels, static partitioning.
package matcher

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/geom"
	"github.com/insee-ban/parcelmatch/rtree"
)

// buildExistingLinkIndex builds the reverse map named in spec §4.4:
// parcel id -> address indices whose existing_link names that parcel,
// in address-index order. Single-threaded, run once before Stage 1.
func buildExistingLinkIndex(addresses []core.Address) map[string][]core.AddressIndex {
	idx := make(map[string][]core.AddressIndex)
	for i, a := range addresses {
		for _, target := range a.ExistingLink {
			idx[target] = append(idx[target], core.AddressIndex(i))
		}
	}
	return idx
}

func runStage1(
	ctx context.Context,
	addresses []core.Address,
	parcels []core.Parcel,
	addrTree *rtree.Tree,
	linkIndex map[string][]core.AddressIndex,
	parcelMatched []atomic.Bool,
	cfg core.Config,
) ([]core.MatchRow, error) {
	parts := chunks(len(parcels), cfg.NumWorkers)
	buffers := make([][]core.MatchRow, len(parts))

	g, _ := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			buf := make([]core.MatchRow, 0, 16)
			for pi := part.Start; pi < part.End; pi++ {
				p := parcels[pi]
				var err error
				buf, err = stage1Parcel(addresses, p, addrTree, linkIndex, cfg, &parcelMatched[pi], buf)
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

func stage1Parcel(
	addresses []core.Address,
	p core.Parcel,
	addrTree *rtree.Tree,
	linkIndex map[string][]core.AddressIndex,
	cfg core.Config,
	matched *atomic.Bool,
	buf []core.MatchRow,
) ([]core.MatchRow, error) {
	// Step 1: pre-existing links, same code_insee only (spec §9 open
	// question, resolved in favor of rejecting cross-municipality links).
	// linkIndex is built by buildExistingLinkIndex from addresses itself,
	// so every ai is safe-by-construction; no bounds check needed.
	for _, ai := range linkIndex[p.ID] {
		a := addresses[ai]
		if a.CodeINSEE != p.CodeINSEE {
			continue
		}
		buf = append(buf, core.MatchRow{
			AddressID: a.ID, ParcelID: p.ID,
			MatchType: core.PreExisting, DistanceM: 0.0, Confidence: 100,
		})
		matched.Store(true)
	}

	// Step 2: containment, address-index order.
	candidates := addrTree.Range(p.AABB)
	sortItemsByIndex(candidates)
	for _, it := range candidates {
		if err := checkIndex(it.Index, len(addresses)); err != nil {
			return buf, fmt.Errorf("stage1: parcel %s: %w", p.ID, err)
		}
		a := addresses[it.Index]
		if !geom.PointInPolygon(a.Point, p.Geometry, cfg.InsideEpsM) {
			continue
		}
		buf = append(buf, core.MatchRow{
			AddressID: a.ID, ParcelID: p.ID,
			MatchType: core.Inside, DistanceM: 0.0, Confidence: 90,
		})
		matched.Store(true)
	}

	return buf, nil
}
