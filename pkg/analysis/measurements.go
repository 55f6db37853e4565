package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
)

// MeshSummary contains the measurements used to place cutting planes
type MeshSummary struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeMesh measures a mesh. Edges are counted per triangle, so shared
// edges appear twice.
func AnalyzeMesh(m mesh.Mesh) *MeshSummary {
	result := &MeshSummary{
		BoundingBox:   m.BoundingBox(),
		TriangleCount: m.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	m.Each(func(_ int, triangle geometry.Triangle) {
		result.SurfaceArea += triangle.Area()

		v := triangle.Vertices()
		for i := range v {
			length := v[i].Distance(v[(i+1)%3])
			result.EdgeCount++
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	})

	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	return result
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
