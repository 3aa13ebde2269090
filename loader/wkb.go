// SPDX-License-Identifier: MIT
// File: wkb.go
// Role: decode the WKB geom column into core's plain coordinate types via
// github.com/twpayne/go-geom.
package loader

import (
	"fmt"

	geomlib "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/insee-ban/parcelmatch/core"
)

// decodePoint decodes a WKB point, as expected for the addresses table.
func decodePoint(data []byte) (core.Point, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return core.Point{}, fmt.Errorf("%w: %v", ErrUnsupportedGeometry, err)
	}
	pt, ok := g.(*geomlib.Point)
	if !ok {
		return core.Point{}, fmt.Errorf("%w: expected Point, got %T", ErrUnsupportedGeometry, g)
	}
	coords := pt.FlatCoords()
	if len(coords) < 2 {
		return core.Point{}, fmt.Errorf("%w: %v", core.ErrNonFiniteCoordinate, ErrUnsupportedGeometry)
	}
	return core.Point{X: coords[0], Y: coords[1]}, nil
}

// decodeGeometry decodes a WKB polygon or multipolygon, as expected for
// the parcels table.
func decodeGeometry(data []byte) (core.Geometry, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return core.Geometry{}, fmt.Errorf("%w: %v", ErrUnsupportedGeometry, err)
	}
	switch t := g.(type) {
	case *geomlib.Polygon:
		return core.Geometry{Polygons: []core.Polygon{polygonFrom(t)}}, nil
	case *geomlib.MultiPolygon:
		polys := make([]core.Polygon, t.NumPolygons())
		for i := range polys {
			polys[i] = polygonFrom(t.Polygon(i))
		}
		return core.Geometry{Polygons: polys}, nil
	default:
		return core.Geometry{}, fmt.Errorf("%w: got %T", ErrUnsupportedGeometry, g)
	}
}

func polygonFrom(p *geomlib.Polygon) core.Polygon {
	outer := ringFrom(p.LinearRing(0))
	var inner []core.Ring
	for i := 1; i < p.NumLinearRings(); i++ {
		inner = append(inner, ringFrom(p.LinearRing(i)))
	}
	return core.Polygon{Outer: outer, Inner: inner}
}

func ringFrom(lr *geomlib.LinearRing) core.Ring {
	stride := lr.Layout().Stride()
	flat := lr.FlatCoords()
	n := len(flat) / stride
	ring := make(core.Ring, n)
	for i := 0; i < n; i++ {
		ring[i] = core.Point{X: flat[i*stride], Y: flat[i*stride+1]}
	}
	return ring
}
