package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"
)

var layerColors = map[projection.View]color.ColorNumber{
	projection.Front: color.Red,
	projection.Top:   color.Green,
	projection.SideA: color.Cyan,
	projection.SideB: color.Magenta,
}

// LayerName returns the DXF layer a view is drawn on
func LayerName(v projection.View) string {
	return strings.ToUpper(v.String())
}

// Drawing lays the views out left to right with a gap between them and
// draws every loop as one LWPOLYLINE on the layer of its view.
func Drawing(result section.Result, views []projection.View) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	projected := projection.ProjectAll(result, views)
	shifts := layout(projected, views)

	for _, v := range views {
		name := LayerName(v)
		if _, err := d.AddLayer(name, layerColors[v], dxf.DefaultLineType, true); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", name, err)
		}
		if err := d.ChangeLayer(name); err != nil {
			return nil, fmt.Errorf("failed to select layer %s: %w", name, err)
		}
		for _, p := range projected[v] {
			d.AddEntity(polyline(p.Line, p.Closed, shifts[v]))
		}
	}
	return d, nil
}

// SaveDXF writes the projected loops of result to path
func SaveDXF(path string, result section.Result, views []projection.View) error {
	d, err := Drawing(result, views)
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func polyline(line orb.LineString, closed bool, shift float64) *entity.LwPolyline {
	lwp := entity.NewLwPolyline(len(line))
	for j, pt := range line {
		lwp.Vertices[j] = []float64{pt[0] + shift, pt[1]}
	}
	lwp.Closed = closed
	return lwp
}

// layout returns the horizontal shift of each view so that the views sit
// left to right in order, separated by a tenth of the largest view extent
// but at least one unit.
func layout(projected map[projection.View][]projection.Projected, views []projection.View) map[projection.View]float64 {
	largest := 0.0
	for _, v := range views {
		if b, ok := projection.Extent(projected[v]); ok {
			largest = math.Max(largest, math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]))
		}
	}
	gap := math.Max(1, largest/10)

	shifts := make(map[projection.View]float64, len(views))
	offset := 0.0
	for _, v := range views {
		b, ok := projection.Extent(projected[v])
		if !ok {
			continue
		}
		shifts[v] = offset - b.Min[0]
		offset += b.Max[0] - b.Min[0] + gap
	}
	return shifts
}
