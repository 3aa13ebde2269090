// SPDX-License-Identifier: MIT
// File: config.go
// Role: engine-wide configuration, defaults per spec.md §6, and
// functional options in the teacher's GraphOption/BuilderOption idiom.
package core

import "runtime"

// Defaults per spec.md §6.
const (
	DefaultAddressMaxDistanceM    = 50.0
	DefaultFallbackMaxDistanceM   = 1500.0
	DefaultInsideEpsM             = 1e-6
	DefaultBatchSize              = 100000
	DefaultMinFallbackRadiusM     = 16.0
	DefaultFallbackRadiusMultiple = 2.0 // radius doubling factor, stage 3 step (d)
)

// Config bundles every tunable named in spec.md §6. A zero Config is not
// valid; build one with NewConfig, which applies defaults first.
type Config struct {
	AddressMaxDistanceM  float64
	FallbackMaxDistanceM float64
	InsideEpsM           float64
	BatchSize            int
	NumWorkers           int
	FilterCodeINSEE      string // "" means no filter
	LimitAddresses       int    // 0 means no limit
}

// Option configures a Config before construction.
type Option func(*Config)

// WithAddressMaxDistanceM overrides the Stage 2 upper bound.
func WithAddressMaxDistanceM(m float64) Option {
	return func(c *Config) { c.AddressMaxDistanceM = m }
}

// WithFallbackMaxDistanceM overrides the Stage 3 hard-reject radius.
func WithFallbackMaxDistanceM(m float64) Option {
	return func(c *Config) { c.FallbackMaxDistanceM = m }
}

// WithInsideEpsM overrides the containment tolerance.
func WithInsideEpsM(eps float64) Option {
	return func(c *Config) { c.InsideEpsM = eps }
}

// WithBatchSize overrides the writer flush granularity.
func WithBatchSize(n int) Option {
	return func(c *Config) { c.BatchSize = n }
}

// WithNumWorkers overrides worker count; n <= 0 means host parallelism.
func WithNumWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.NumWorkers = n
		}
	}
}

// WithFilterCodeINSEE restricts both inputs to a single municipality (debug path).
func WithFilterCodeINSEE(code string) Option {
	return func(c *Config) { c.FilterCodeINSEE = code }
}

// WithLimitAddresses caps the address input to n rows (debug path); n <= 0 means no cap.
func WithLimitAddresses(n int) Option {
	return func(c *Config) { c.LimitAddresses = n }
}

// NewConfig builds a Config with spec §6 defaults, then applies opts
// left-to-right for deterministic precedence.
func NewConfig(opts ...Option) Config {
	c := Config{
		AddressMaxDistanceM:  DefaultAddressMaxDistanceM,
		FallbackMaxDistanceM: DefaultFallbackMaxDistanceM,
		InsideEpsM:           DefaultInsideEpsM,
		BatchSize:            DefaultBatchSize,
		NumWorkers:           runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = runtime.GOMAXPROCS(0)
	}
	return c
}

// InitialFallbackRadiusM computes the Stage 3 seed radius for a given
// parcel AABB: max(16, 0.5 * max AABB side), per spec §6.
func InitialFallbackRadiusM(box AABB) float64 {
	r := box.MaxSide() * 0.5
	if r < DefaultMinFallbackRadiusM {
		return DefaultMinFallbackRadiusM
	}
	return r
}
