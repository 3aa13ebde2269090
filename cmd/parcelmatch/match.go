// SPDX-License-Identifier: MIT
// File: match.go
// Role: the `match` subcommand: wires loader -> matcher -> writer for one
// department's data set (spec §2's data flow).
package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/loader"
	"github.com/insee-ban/parcelmatch/matcher"
	"github.com/insee-ban/parcelmatch/writer"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run the three-stage matching algorithm over one department",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "optional YAML config file")
	flags.String("addresses", "", "path to the addresses parquet input (required)")
	flags.String("parcels", "", "path to the parcels parquet input (required)")
	flags.String("out", "", "path to the output parquet file (required)")
	flags.Bool("strict", false, "exit 2 if any parcel is left unmatched")
	flags.Float64("address-max-distance-m", core.DefaultAddressMaxDistanceM, "stage 2 upper bound, meters")
	flags.Float64("fallback-max-distance-m", core.DefaultFallbackMaxDistanceM, "stage 3 upper bound, meters")
	flags.Float64("inside-eps-m", core.DefaultInsideEpsM, "containment tolerance, meters")
	flags.Int("batch-size", core.DefaultBatchSize, "writer flush granularity")
	flags.Int("num-workers", 0, "worker count (0 means host parallelism)")
	flags.String("filter-code-insee", "", "restrict both inputs to one municipality (debug path)")
	flags.Int("limit-addresses", 0, "truncate the address input to N rows (debug path)")

	return cmd
}

func runMatch(cmd *cobra.Command) error {
	params, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", runID))

	ctx := context.Background()

	addresses, parcels, err := loader.Load(params.addressesIn, params.parcelsIn, params.cfg, logger)
	if err != nil {
		logger.Error("load failed", zap.Error(err))
		return err
	}

	sink, err := writer.New(params.out, params.cfg, logger)
	if err != nil {
		logger.Error("writer init failed", zap.Error(err))
		return err
	}

	summary, err := matcher.Run(ctx, addresses, parcels, params.cfg, sink, logger)
	if err != nil {
		logger.Error("match failed", zap.Error(err))
		_ = sink.Abort()
		return err
	}
	if err := sink.Close(); err != nil {
		logger.Error("writer close failed", zap.Error(err))
		return err
	}

	logger.Info("summary",
		zap.Int("pre_existing", summary.PreExisting),
		zap.Int("inside", summary.Inside),
		zap.Int("border_near", summary.BorderNear),
		zap.Int("fallback_nearest", summary.FallbackNearest),
		zap.Int("parcels_unmatched", summary.ParcelsUnmatched),
	)

	if params.strict && summary.ParcelsUnmatched > 0 {
		return &partialRunErr{unmatched: summary.ParcelsUnmatched}
	}
	return nil
}
