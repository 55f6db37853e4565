package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gosection/pkg/analysis"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
)

func printReport(w io.Writer, result section.Result, report *analysis.SectionReport, views []projection.View) {
	fmt.Fprintln(w, "Section")
	fmt.Fprintln(w, "=======")
	fmt.Fprintf(w, "Plane: point %s, normal %s\n", analysis.FormatVector(report.Plane.Point), analysis.FormatVector(report.Plane.Normal))
	fmt.Fprintf(w, "Curve: %s\n", report.Kind)

	switch c := result.Curve.(type) {
	case section.Circle:
		fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(c.Center))
		fmt.Fprintf(w, "  Radius: %s\n", analysis.FormatMeasurement(c.Radius, ""))
	case section.Ellipse:
		fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(c.Center))
		fmt.Fprintf(w, "  Major: %s along %s\n", analysis.FormatMeasurement(c.MajorRadius, ""), analysis.FormatVector(c.MajorAxis))
		fmt.Fprintf(w, "  Minor: %s along %s\n", analysis.FormatMeasurement(c.MinorRadius, ""), analysis.FormatVector(c.MinorAxis))
	}
	if result.NeedsMesh {
		fmt.Fprintln(w, "No analytic solution, the plane runs along the axis")
	}

	fmt.Fprintf(w, "Closed: %t\n", report.Closed)
	fmt.Fprintf(w, "Loops: %d\n", len(report.Loops))

	for _, lr := range report.Loops {
		state := "open"
		switch {
		case lr.Hole:
			state = "closed, hole"
		case lr.Closed:
			state = "closed"
		}
		fmt.Fprintf(w, "\nLoop %d: %s, %d points\n", lr.Index, state, lr.Points)
		fmt.Fprintf(w, "  Perimeter: %s\n", analysis.FormatMeasurement(lr.Perimeter, "units"))
		if lr.Closed {
			fmt.Fprintf(w, "  Area: %s\n", analysis.FormatMeasurement(lr.Area, "square units"))
			fmt.Fprintf(w, "  Centroid: %s\n", analysis.FormatVector(lr.Centroid))
		}
		if lr.Circle != nil {
			fmt.Fprintf(w, "  Circle: center %s, radius %.6f (deviation %.6f)\n",
				analysis.FormatVector(lr.Circle.Center), lr.Circle.Radius, lr.Circle.StdDev)
		}
	}

	if len(report.Loops) > 0 {
		fmt.Fprintf(w, "\nTotal perimeter: %s\n", analysis.FormatMeasurement(report.TotalPerimeter, "units"))
		fmt.Fprintf(w, "Net area: %s\n", analysis.FormatMeasurement(report.NetArea, "square units"))
	}

	if len(report.Extents) > 0 {
		fmt.Fprintln(w, "\nExtents:")
		for _, v := range views {
			b, ok := report.Extents[v]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-7s %.6f x %.6f\n", v.String()+":", b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
		}
	}

	s := report.Stats
	if s.Triangles > 0 {
		fmt.Fprintf(w, "\nPipeline: %d triangles, %d segments, %d welded, %d points, %d discarded\n",
			s.Triangles, s.RawSegments, s.WeldedSegments, s.UniquePoints, s.DiscardedSegments)
	}
}
