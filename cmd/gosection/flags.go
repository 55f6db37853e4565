package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/gosection/pkg/export"
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/spf13/pflag"
)

// parseVector parses "x,y,z"
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z but got %q", s)
	}
	var c [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q in %q", part, s)
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

type planeFlags struct {
	point  string
	normal string
}

func (p *planeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.point, "point", "0,0,0", "a point on the cutting plane")
	fs.StringVar(&p.normal, "normal", "0,0,1", "the cutting plane normal")
}

func (p *planeFlags) plane() (geometry.Plane, error) {
	point, err := parseVector(p.point)
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("--point: %w", err)
	}
	normal, err := parseVector(p.normal)
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("--normal: %w", err)
	}
	plane := geometry.NewPlane(point, normal)
	if !plane.Valid() {
		return geometry.Plane{}, fmt.Errorf("--normal must not be zero")
	}
	return plane, nil
}

type exportFlags struct {
	geojson string
	dxf     string
	png     string
	width   int
	json    bool
}

func (e *exportFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&e.geojson, "geojson", "", "write projected loops as GeoJSON to this file")
	fs.StringVar(&e.dxf, "dxf", "", "write projected loops as DXF to this file")
	fs.StringVar(&e.png, "png", "", "render projected loops as PNG to this file")
	fs.IntVar(&e.width, "png-width", export.DefaultImageWidth, "PNG width in pixels")
	fs.BoolVar(&e.json, "json", false, "print the 3D loops as JSON instead of a report")
}

func (e *exportFlags) write(a *app, result section.Result, views []projection.View) error {
	if e.geojson != "" {
		if err := export.SaveGeoJSON(e.geojson, result, views); err != nil {
			return err
		}
		a.logger.Info("wrote GeoJSON", "file", e.geojson)
	}
	if e.dxf != "" {
		if err := export.SaveDXF(e.dxf, result, views); err != nil {
			return err
		}
		a.logger.Info("wrote DXF", "file", e.dxf)
	}
	if e.png != "" {
		if err := export.SavePNG(e.png, result, views, e.width); err != nil {
			return err
		}
		a.logger.Info("wrote PNG", "file", e.png)
	}
	return nil
}
