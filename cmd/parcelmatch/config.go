// SPDX-License-Identifier: MIT
// File: config.go
// Role: resolve core.Config from file / env / flags via viper, in that
// precedence order (SPEC_FULL §A.2). cmd/parcelmatch is the only package
// that touches viper or the environment.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/insee-ban/parcelmatch/core"
)

const envPrefix = "PARCELMATCH"

// runParams bundles the resolved core.Config plus the I/O paths and
// driver flags that live outside core.Config.
type runParams struct {
	cfg         core.Config
	addressesIn string
	parcelsIn   string
	out         string
	strict      bool
}

func resolveConfig(cmd *cobra.Command) (runParams, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return runParams{}, fmt.Errorf("config: bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return runParams{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	opts := []core.Option{
		core.WithAddressMaxDistanceM(v.GetFloat64("address-max-distance-m")),
		core.WithFallbackMaxDistanceM(v.GetFloat64("fallback-max-distance-m")),
		core.WithInsideEpsM(v.GetFloat64("inside-eps-m")),
		core.WithBatchSize(v.GetInt("batch-size")),
		core.WithNumWorkers(v.GetInt("num-workers")),
		core.WithFilterCodeINSEE(v.GetString("filter-code-insee")),
		core.WithLimitAddresses(v.GetInt("limit-addresses")),
	}

	p := runParams{
		cfg:         core.NewConfig(opts...),
		addressesIn: v.GetString("addresses"),
		parcelsIn:   v.GetString("parcels"),
		out:         v.GetString("out"),
		strict:      v.GetBool("strict"),
	}
	if p.addressesIn == "" || p.parcelsIn == "" || p.out == "" {
		return runParams{}, fmt.Errorf("config: --addresses, --parcels, and --out are required")
	}
	return p, nil
}
