// SPDX-License-Identifier: MIT
// File: run.go
// Role: Run wires the three stages together over one department's data
// (spec §4.4's barrier-between-stages requirement; SPEC_FULL §B.1's
// Summary enrichment).
package matcher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/rtree"
)

// Run matches addresses against parcels and streams every emitted row to
// sink in stage order (Stage 1 rows precede Stage 2 rows precede Stage 3
// rows, per spec §5). It returns a Summary of the run once every stage
// has drained, or the first fatal error encountered.
func Run(ctx context.Context, addresses []core.Address, parcels []core.Parcel, cfg core.Config, sink Sink, logger *zap.Logger) (Summary, error) {
	start := time.Now()

	parcelTree := buildParcelTree(parcels)
	addrTree := buildAddressTree(addresses)
	parcelMatched := make([]atomic.Bool, len(parcels))
	linkIndex := buildExistingLinkIndex(addresses)

	var summary Summary

	stage1Rows, err := runStage1(ctx, addresses, parcels, addrTree, linkIndex, parcelMatched, cfg)
	if err != nil {
		return summary, fmt.Errorf("matcher: stage1: %w", err)
	}
	if err := sink.Write(stage1Rows); err != nil {
		return summary, fmt.Errorf("matcher: stage1: write: %w", err)
	}
	summary.record(stage1Rows)
	logStage(logger, "stage1", len(stage1Rows))

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("matcher: cancelled before stage2: %w", err)
	}
	stage2Rows, err := runStage2(ctx, addresses, parcels, parcelTree, parcelMatched, cfg)
	if err != nil {
		return summary, fmt.Errorf("matcher: stage2: %w", err)
	}
	if err := sink.Write(stage2Rows); err != nil {
		return summary, fmt.Errorf("matcher: stage2: write: %w", err)
	}
	summary.record(stage2Rows)
	logStage(logger, "stage2", len(stage2Rows))

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("matcher: cancelled before stage3: %w", err)
	}
	stage3Rows, unmatched, err := runStage3(ctx, addresses, parcels, addrTree, parcelMatched, cfg)
	if err != nil {
		return summary, fmt.Errorf("matcher: stage3: %w", err)
	}
	if err := sink.Write(stage3Rows); err != nil {
		return summary, fmt.Errorf("matcher: stage3: write: %w", err)
	}
	summary.record(stage3Rows)
	summary.ParcelsUnmatched = unmatched
	logStage(logger, "stage3", len(stage3Rows))

	summary.ElapsedSeconds = time.Since(start).Seconds()
	if logger != nil {
		logger.Info("run complete",
			zap.Int("rows", summary.Total()),
			zap.Int("parcels_unmatched", summary.ParcelsUnmatched),
			zap.Float64("elapsed_seconds", summary.ElapsedSeconds),
		)
	}
	return summary, nil
}

func logStage(logger *zap.Logger, stage string, rows int) {
	if logger != nil {
		logger.Info("stage complete", zap.String("stage", stage), zap.Int("rows", rows))
	}
}

// buildParcelTree indexes every parcel's own AABB (spec §4.3).
func buildParcelTree(parcels []core.Parcel) *rtree.Tree {
	items := make([]rtree.Item, len(parcels))
	for i, p := range parcels {
		items[i] = rtree.Item{Index: i, Box: p.AABB}
	}
	return rtree.Build(items, rtree.DefaultFanout)
}

// buildAddressTree indexes every address point as a zero-area AABB
// (spec §4.3: "one tree over address points treated as zero-area AABBs").
func buildAddressTree(addresses []core.Address) *rtree.Tree {
	items := make([]rtree.Item, len(addresses))
	for i, a := range addresses {
		items[i] = rtree.Item{Index: i, Box: core.AABB{
			MinX: a.Point.X, MinY: a.Point.Y,
			MaxX: a.Point.X, MaxY: a.Point.Y,
		}}
	}
	return rtree.Build(items, rtree.DefaultFanout)
}
