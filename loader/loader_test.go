package loader_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
	geomlib "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"go.uber.org/zap"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/loader"
)

type addressRow struct {
	ID           string  `parquet:"id"`
	CodeINSEE    string  `parquet:"code_insee"`
	Geom         []byte  `parquet:"geom"`
	ExistingLink *string `parquet:"existing_link,optional"`
}

type parcelRow struct {
	ID        string `parquet:"id"`
	CodeINSEE string `parquet:"code_insee"`
	Geom      []byte `parquet:"geom"`
}

// addressRowNoLink omits existing_link entirely, simulating a table
// written without that column.
type addressRowNoLink struct {
	ID        string `parquet:"id"`
	CodeINSEE string `parquet:"code_insee"`
	Geom      []byte `parquet:"geom"`
}

func wkbPoint(t *testing.T, x, y float64) []byte {
	t.Helper()
	g := geomlib.NewPointFlat(geomlib.XY, []float64{x, y})
	data, err := wkb.Marshal(g, binary.LittleEndian)
	require.NoError(t, err)
	return data
}

func wkbSquare(t *testing.T) []byte {
	t.Helper()
	flat := []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}
	g := geomlib.NewPolygonFlat(geomlib.XY, flat, []int{len(flat)})
	data, err := wkb.Marshal(g, binary.LittleEndian)
	require.NoError(t, err)
	return data
}

func writeParquet[T any](t *testing.T, path string, rows []T) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := parquet.NewGenericWriter[T](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestLoad_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	addrPath := filepath.Join(dir, "addresses.parquet")
	parcelPath := filepath.Join(dir, "parcels.parquet")

	link := "P1"
	writeParquet(t, addrPath, []addressRow{
		{ID: "A1", CodeINSEE: "69001", Geom: wkbPoint(t, 1000, 1000), ExistingLink: &link},
		{ID: "A2", CodeINSEE: "69001", Geom: wkbPoint(t, 10, 5)},
		{ID: "A3", CodeINSEE: "75001", Geom: wkbPoint(t, 5, 5)},
	})
	writeParquet(t, parcelPath, []parcelRow{
		{ID: "P1", CodeINSEE: "69001", Geom: wkbSquare(t)},
	})

	addresses, parcels, err := loader.Load(addrPath, parcelPath, core.NewConfig(), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	require.Len(t, parcels, 1)
	require.Equal(t, core.AABB{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, parcels[0].AABB)
	require.Equal(t, "P1", addresses[0].ExistingLink[0])
}

func TestLoad_FilterAndLimit(t *testing.T) {
	dir := t.TempDir()
	addrPath := filepath.Join(dir, "addresses.parquet")
	parcelPath := filepath.Join(dir, "parcels.parquet")

	writeParquet(t, addrPath, []addressRow{
		{ID: "A1", CodeINSEE: "69001", Geom: wkbPoint(t, 1, 1)},
		{ID: "A2", CodeINSEE: "69001", Geom: wkbPoint(t, 2, 2)},
		{ID: "A3", CodeINSEE: "75001", Geom: wkbPoint(t, 3, 3)},
	})
	writeParquet(t, parcelPath, []parcelRow{
		{ID: "P1", CodeINSEE: "69001", Geom: wkbSquare(t)},
		{ID: "P2", CodeINSEE: "75001", Geom: wkbSquare(t)},
	})

	cfg := core.NewConfig(core.WithFilterCodeINSEE("69001"), core.WithLimitAddresses(1))
	addresses, parcels, err := loader.Load(addrPath, parcelPath, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	require.Len(t, parcels, 1)
	require.Equal(t, "P1", parcels[0].ID)
}

func TestLoad_MalformedGeometryIsFatal(t *testing.T) {
	dir := t.TempDir()
	addrPath := filepath.Join(dir, "addresses.parquet")
	parcelPath := filepath.Join(dir, "parcels.parquet")

	writeParquet(t, addrPath, []addressRow{
		{ID: "A1", CodeINSEE: "69001", Geom: []byte("not-wkb")},
	})
	writeParquet(t, parcelPath, []parcelRow{
		{ID: "P1", CodeINSEE: "69001", Geom: wkbSquare(t)},
	})

	_, _, err := loader.Load(addrPath, parcelPath, core.NewConfig(), zap.NewNop())
	require.Error(t, err)
}

func TestLoad_MissingColumnIsFatal(t *testing.T) {
	dir := t.TempDir()
	addrPath := filepath.Join(dir, "addresses.parquet")
	parcelPath := filepath.Join(dir, "parcels.parquet")

	writeParquet(t, addrPath, []addressRowNoLink{
		{ID: "A1", CodeINSEE: "69001", Geom: wkbPoint(t, 1, 1)},
	})
	writeParquet(t, parcelPath, []parcelRow{
		{ID: "P1", CodeINSEE: "69001", Geom: wkbSquare(t)},
	})

	_, _, err := loader.Load(addrPath, parcelPath, core.NewConfig(), zap.NewNop())
	require.Error(t, err)
	require.ErrorIs(t, err, loader.ErrMissingColumn)
}
