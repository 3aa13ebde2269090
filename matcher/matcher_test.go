package matcher_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/geom"
	"github.com/insee-ban/parcelmatch/matcher"
)

type fakeSink struct {
	rows []core.MatchRow
}

func (s *fakeSink) Write(rows []core.MatchRow) error {
	s.rows = append(s.rows, rows...)
	return nil
}

func square(id, codeINSEE string, minX, minY, maxX, maxY float64) core.Parcel {
	ring := core.Ring{
		{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}, {X: minX, Y: minY},
	}
	g := core.Geometry{Polygons: []core.Polygon{{Outer: ring}}}
	return core.Parcel{ID: id, CodeINSEE: codeINSEE, Geometry: g, AABB: geom.AABBOf(g)}
}

func addr(id, codeINSEE string, x, y float64, links ...string) core.Address {
	return core.Address{ID: id, CodeINSEE: codeINSEE, Point: core.Point{X: x, Y: y}, ExistingLink: links}
}

func runFixture(t *testing.T, addresses []core.Address, parcels []core.Parcel, opts ...core.Option) []core.MatchRow {
	t.Helper()
	sink := &fakeSink{}
	_, err := matcher.Run(context.Background(), addresses, parcels, core.NewConfig(opts...), sink, nil)
	require.NoError(t, err)
	return sink.rows
}

// S1 — PreExisting wins over distance.
func TestScenario_S1_PreExistingWinsOverDistance(t *testing.T) {
	p1 := square("P1", "69001", 0, 0, 10, 10)
	a1 := addr("A1", "69001", 1000, 1000, "P1")

	rows := runFixture(t, []core.Address{a1}, []core.Parcel{p1})

	require.Len(t, rows, 1)
	require.Equal(t, core.MatchRow{AddressID: "A1", ParcelID: "P1", MatchType: core.PreExisting, DistanceM: 0, Confidence: 100}, rows[0])
}

// S2 — Inside, boundary inclusive.
func TestScenario_S2_InsideBoundaryInclusive(t *testing.T) {
	p1 := square("P1", "69001", 0, 0, 10, 10)
	a2 := addr("A2", "69001", 10, 5)

	rows := runFixture(t, []core.Address{a2}, []core.Parcel{p1})

	require.Len(t, rows, 1)
	require.Equal(t, core.Inside, rows[0].MatchType)
	require.Equal(t, 0.0, rows[0].DistanceM)
	require.Equal(t, 90, rows[0].Confidence)
}

// S3 — BorderNear with confidence step.
func TestScenario_S3_BorderNearConfidenceStep(t *testing.T) {
	p1 := square("P1", "69001", 0, 0, 10, 10)
	a3 := addr("A3", "69001", 13, 5)
	a4 := addr("A4", "69001", 20, 5)

	rows := runFixture(t, []core.Address{a3, a4}, []core.Parcel{p1})

	require.Len(t, rows, 2)
	byID := map[string]core.MatchRow{}
	for _, r := range rows {
		byID[r.AddressID] = r
	}
	require.Equal(t, core.MatchRow{AddressID: "A3", ParcelID: "P1", MatchType: core.BorderNear, DistanceM: 3.0, Confidence: 80}, byID["A3"])
	require.Equal(t, core.MatchRow{AddressID: "A4", ParcelID: "P1", MatchType: core.BorderNear, DistanceM: 10.0, Confidence: 70}, byID["A4"])
}

// S4 — Fallback nearest with tie-break.
func TestScenario_S4_FallbackNearestTieBreak(t *testing.T) {
	p2 := square("P2", "69001", 0, 0, 10, 10)
	a5 := addr("A5", "69001", 110, 5)
	a6 := addr("A6", "69001", 105, -95)

	rows := runFixture(t, []core.Address{a5, a6}, []core.Parcel{p2})

	require.Len(t, rows, 1)
	require.Equal(t, core.MatchRow{AddressID: "A5", ParcelID: "P2", MatchType: core.FallbackNearest, DistanceM: 100.0, Confidence: 50}, rows[0])
}

// S5 — Hard reject beyond fallback cap.
func TestScenario_S5_HardRejectBeyondFallbackCap(t *testing.T) {
	p3 := square("P3", "69001", -1, -1, 1, 1)
	far := addr("FAR", "69001", 2000, 0)

	rows := runFixture(t, []core.Address{far}, []core.Parcel{p3})

	require.Empty(t, rows)
}

// S6 — L-shaped parcel whose bounding-box centre (5,5) lies in the notch,
// outside the polygon; the address at (3,3) in the inner corner must come
// out Inside.
func TestScenario_S6_LShapedParcel(t *testing.T) {
	ring := core.Ring{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	g := core.Geometry{Polygons: []core.Polygon{{Outer: ring}}}
	p4 := core.Parcel{ID: "P4", CodeINSEE: "69001", Geometry: g, AABB: geom.AABBOf(g)}
	a := addr("A", "69001", 3, 3)

	rows := runFixture(t, []core.Address{a}, []core.Parcel{p4})

	require.Len(t, rows, 1)
	require.Equal(t, core.MatchRow{AddressID: "A", ParcelID: "P4", MatchType: core.Inside, DistanceM: 0, Confidence: 90}, rows[0])
}

// Invariant 5: a parcel with a FallbackNearest row has no row from an
// earlier stage.
func TestInvariant_FallbackGatedByEarlierStages(t *testing.T) {
	p2 := square("P2", "69001", 0, 0, 10, 10)
	a5 := addr("A5", "69001", 110, 5)

	rows := runFixture(t, []core.Address{a5}, []core.Parcel{p2})

	seenParcels := map[string][]core.MatchType{}
	for _, r := range rows {
		seenParcels[r.ParcelID] = append(seenParcels[r.ParcelID], r.MatchType)
	}
	for pid, types := range seenParcels {
		hasFallback := false
		hasEarlier := false
		for _, mt := range types {
			if mt == core.FallbackNearest {
				hasFallback = true
			} else {
				hasEarlier = true
			}
		}
		require.False(t, hasFallback && hasEarlier, "parcel %s has both FallbackNearest and an earlier-stage row", pid)
	}
}

// Invariant 7: determinism across repeated runs with identical inputs.
func TestInvariant_Determinism(t *testing.T) {
	addresses := []core.Address{
		addr("A1", "69001", 1000, 1000, "P1"),
		addr("A2", "69001", 10, 5),
		addr("A3", "69001", 13, 5),
		addr("A4", "69001", 20, 5),
		addr("A5", "69001", 110, 5),
		addr("A6", "69001", 105, -95),
	}
	parcels := []core.Parcel{
		square("P1", "69001", 0, 0, 10, 10),
		square("P2", "69001", 200, 200, 210, 210),
	}

	first := runFixture(t, addresses, parcels)
	second := runFixture(t, addresses, parcels)
	require.Equal(t, first, second)
}

// Cross-municipality pre-existing links are rejected (spec §9 open
// question, resolved in favor of same-code_insee matching). P1 then has no
// Stage 1 or Stage 2 row, so Stage 3 matches it to A1 as FallbackNearest,
// sqrt(2*990^2) ~ 1400.07 m from the corner (10,10).
func TestStage1_RejectsCrossMunicipalityPreExisting(t *testing.T) {
	p1 := square("P1", "69001", 0, 0, 10, 10)
	a1 := addr("A1", "75001", 1000, 1000, "P1")

	rows := runFixture(t, []core.Address{a1}, []core.Parcel{p1})
	require.Len(t, rows, 1)
	require.Equal(t, core.MatchRow{AddressID: "A1", ParcelID: "P1", MatchType: core.FallbackNearest, DistanceM: math.Sqrt(2 * 990 * 990), Confidence: 50}, rows[0])
}
