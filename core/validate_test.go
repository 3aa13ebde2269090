package core_test

import (
	"errors"
	"math"
	"testing"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/stretchr/testify/require"
)

func TestAddressValidate(t *testing.T) {
	require.ErrorIs(t, core.Address{}.Validate(), core.ErrEmptyID)

	bad := core.Address{ID: "A1", Point: core.Point{X: math.NaN(), Y: 0}}
	require.ErrorIs(t, bad.Validate(), core.ErrNonFiniteCoordinate)

	good := core.Address{ID: "A1", CodeINSEE: "69001", Point: core.Point{X: 1, Y: 2}}
	require.NoError(t, good.Validate())
}

func TestParcelValidate(t *testing.T) {
	square := func() core.Ring {
		return core.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}
	}

	t.Run("empty id", func(t *testing.T) {
		require.ErrorIs(t, core.Parcel{}.Validate(), core.ErrEmptyID)
	})

	t.Run("empty geometry", func(t *testing.T) {
		p := core.Parcel{ID: "P1"}
		require.ErrorIs(t, p.Validate(), core.ErrEmptyGeometry)
	})

	t.Run("open ring", func(t *testing.T) {
		ring := square()
		ring[len(ring)-1] = core.Point{X: 999, Y: 999}
		p := core.Parcel{ID: "P1", Geometry: core.Geometry{Polygons: []core.Polygon{{Outer: ring}}}}
		require.ErrorIs(t, p.Validate(), core.ErrOpenRing)
	})

	t.Run("non-finite coordinate", func(t *testing.T) {
		ring := square()
		ring[1] = core.Point{X: math.Inf(1), Y: 0}
		p := core.Parcel{ID: "P1", Geometry: core.Geometry{Polygons: []core.Polygon{{Outer: ring}}}}
		require.ErrorIs(t, p.Validate(), core.ErrNonFiniteCoordinate)
	})

	t.Run("degenerate ring", func(t *testing.T) {
		ring := core.Ring{{X: 0, Y: 0}, {X: 0, Y: 0}}
		p := core.Parcel{ID: "P1", Geometry: core.Geometry{Polygons: []core.Polygon{{Outer: ring}}}}
		require.ErrorIs(t, p.Validate(), core.ErrDegenerateRing)
	})

	t.Run("valid with hole", func(t *testing.T) {
		hole := core.Ring{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 2}}
		p := core.Parcel{
			ID: "P1", CodeINSEE: "69001",
			Geometry: core.Geometry{Polygons: []core.Polygon{{Outer: square(), Inner: []core.Ring{hole}}}},
		}
		require.NoError(t, p.Validate())
	})

	var target error
	require.False(t, errors.Is(target, core.ErrEmptyID))
}

func TestConfigDefaults(t *testing.T) {
	cfg := core.NewConfig()
	require.Equal(t, core.DefaultAddressMaxDistanceM, cfg.AddressMaxDistanceM)
	require.Equal(t, core.DefaultFallbackMaxDistanceM, cfg.FallbackMaxDistanceM)
	require.Equal(t, core.DefaultInsideEpsM, cfg.InsideEpsM)
	require.Equal(t, core.DefaultBatchSize, cfg.BatchSize)
	require.Greater(t, cfg.NumWorkers, 0)

	cfg2 := core.NewConfig(core.WithAddressMaxDistanceM(10), core.WithNumWorkers(4))
	require.Equal(t, 10.0, cfg2.AddressMaxDistanceM)
	require.Equal(t, 4, cfg2.NumWorkers)
}

func TestInitialFallbackRadius(t *testing.T) {
	small := core.AABB{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	require.Equal(t, core.DefaultMinFallbackRadiusM, core.InitialFallbackRadiusM(small))

	large := core.AABB{MinX: 0, MinY: 0, MaxX: 100, MaxY: 40}
	require.Equal(t, 50.0, core.InitialFallbackRadiusM(large))
}
