// Package export writes section results to files: projected loops as
// GeoJSON or DXF drawings and the 3D loops as JSON.
package export

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
)

// FeatureCollection builds one feature per loop per view. Closed loops
// become polygons, open loops line strings.
func FeatureCollection(result section.Result, views []projection.View) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, v := range views {
		for _, p := range projection.ProjectResult(result, v) {
			var geom orb.Geometry = p.Line
			if p.Closed {
				geom = orb.Polygon{p.Ring()}
			}
			feature := geojson.NewFeature(geom)
			feature.Properties["view"] = v.String()
			feature.Properties["loop"] = p.Loop
			feature.Properties["closed"] = p.Closed
			feature.Properties["curve"] = result.Kind().String()
			fc.Append(feature)
		}
	}
	return fc
}

// SaveGeoJSON writes the projected loops of result to path
func SaveGeoJSON(path string, result section.Result, views []projection.View) error {
	data, err := FeatureCollection(result, views).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}
