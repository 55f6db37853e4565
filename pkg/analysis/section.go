package analysis

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/samber/lo"
)

// minCirclePoints is the smallest loop that is tested for roundness; fewer
// points always lie on some circle.
const minCirclePoints = 8

// LoopReport contains the measurements of one section loop
type LoopReport struct {
	Index     int
	Closed    bool
	Points    int
	Perimeter float64
	// Area and Centroid are only set for closed loops
	Area     float64
	Centroid geometry.Vector3
	// Hole is set for closed loops nested an odd number of times inside
	// other closed loops of the same cut
	Hole   bool
	Bounds geometry.BoundingBox
	// Circle is set when the loop points lie on a circle
	Circle *geometry.CircleFit
}

// SectionReport summarizes a section result
type SectionReport struct {
	Plane          geometry.Plane
	Kind           section.CurveKind
	Closed         bool
	Loops          []LoopReport
	TotalPerimeter float64
	// NetArea is the enclosed area of all closed loops with holes subtracted
	NetArea float64
	Extents map[projection.View]orb.Bound
	Stats   section.Stats
}

// AnalyzeSection measures the loops of result, cut by plane p, and the
// extents of their projections into views. Loops whose point spread from
// a fitted circle stays below roundness times the radius get a circle fit.
func AnalyzeSection(result section.Result, p geometry.Plane, views []projection.View, roundness float64) *SectionReport {
	report := &SectionReport{
		Plane:   p,
		Kind:    result.Kind(),
		Closed:  result.Closed(),
		Loops:   make([]LoopReport, len(result.Loops)),
		Extents: make(map[projection.View]orb.Bound, len(views)),
		Stats:   result.Stats,
	}

	u, v := p.Basis()
	to2D := func(q geometry.Vector3) orb.Point {
		d := q.Sub(p.Point)
		return orb.Point{d.Dot(u), d.Dot(v)}
	}
	rings := make([]orb.Ring, len(result.Loops))

	for i, l := range result.Loops {
		lr := LoopReport{
			Index:     i,
			Closed:    l.Closed,
			Points:    l.Len(),
			Perimeter: l.Length(),
			Bounds:    geometry.BoundingBoxOf(l.Points),
		}
		if l.Closed {
			ring := make(orb.Ring, 0, l.Len()+1)
			for _, q := range l.Points {
				ring = append(ring, to2D(q))
			}
			ring = append(ring, ring[0])
			rings[i] = ring

			// ring area is signed by winding
			c, area := planar.CentroidArea(ring)
			lr.Area = math.Abs(area)
			lr.Centroid = p.Point.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
		}
		if l.Len() >= minCirclePoints {
			if fit, err := geometry.FitCircle(l.Points, p); err == nil && fit.StdDev <= roundness*fit.Radius {
				lr.Circle = fit
			}
		}
		report.Loops[i] = lr
	}

	for i := range report.Loops {
		lr := &report.Loops[i]
		if !lr.Closed {
			continue
		}
		depth := lo.CountBy(lo.Range(len(rings)), func(j int) bool {
			return j != i && rings[j] != nil && planar.RingContains(rings[j], rings[i][0])
		})
		lr.Hole = depth%2 == 1
		if lr.Hole {
			report.NetArea -= lr.Area
		} else {
			report.NetArea += lr.Area
		}
	}
	report.TotalPerimeter = lo.SumBy(report.Loops, func(lr LoopReport) float64 {
		return lr.Perimeter
	})

	for _, view := range views {
		if b, ok := projection.Extent(projection.ProjectResult(result, view)); ok {
			report.Extents[view] = b
		}
	}
	return report
}
