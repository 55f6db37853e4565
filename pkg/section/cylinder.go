package section

import (
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
)

// axisAngleEpsilon bounds |cos θ| away from 0 and 1 for the analytic cases
const axisAngleEpsilon = 1e-9

// Cylinder is a right circular cylinder centered on Center.
// A non-positive Height is treated as unbounded along the axis.
type Cylinder struct {
	Center geometry.Vector3
	Axis   geometry.Vector3
	Radius float64
	Height float64
}

// SolveCylinder derives the section of c by plane p from the angle θ
// between the plane normal and the cylinder axis, without touching a mesh.
//
//   - θ ≈ 0: a circle of the cylinder radius around the point where the
//     axis meets the plane. A plane beyond either cap gives an empty result.
//   - θ ≈ 90°: the plane runs along the axis and cuts straight lines. The
//     result is empty with NeedsMesh set.
//   - otherwise an ellipse with minor radius r and major radius r/sin θ,
//     major axis along normal × axis.
//
// The curve center is always the point where the axis meets the plane, not
// p.Point. The two only coincide when p.Point lies on the axis.
//
// The curve is sampled with the configured segment count. The plane normal
// does not need to be unit length.
func SolveCylinder(c Cylinder, p geometry.Plane, opts ...Option) Result {
	o := buildOptions(opts)
	p = p.Normalized()
	result := Result{Curve: Polygon{}}

	axis := c.Axis.Normalize()
	if !p.Valid() || axis.IsZero() || c.Radius <= 0 {
		o.Logger.Debug("cylinder section skipped", "radius", c.Radius, "axis", c.Axis, "normal", p.Normal)
		return result
	}

	n := p.Normal
	cosTheta := math.Abs(axis.Dot(n))
	if cosTheta < axisAngleEpsilon {
		o.Logger.Debug("cylinder section needs mesh", "reason", "plane parallel to axis")
		result.NeedsMesh = true
		return result
	}

	center, _ := p.IntersectLine(c.Center, axis)

	if 1-cosTheta < axisAngleEpsilon {
		if c.Height > 0 && math.Abs(center.Sub(c.Center).Dot(axis)) > c.Height/2 {
			o.Logger.Debug("cylinder section empty", "reason", "plane beyond caps")
			return result
		}
		u := axis.Perpendicular()
		circle := Circle{
			Center: center,
			Normal: axis,
			U:      u,
			V:      axis.Cross(u),
			Radius: c.Radius,
		}
		result.Curve = circle
		result.Loops = []Loop{sampleLoop(circle.Point, o.Segments)}
		return result
	}

	theta := math.Acos(cosTheta)
	major := n.Cross(axis).Normalize()
	ellipse := Ellipse{
		Center:      center,
		MajorAxis:   major,
		MinorAxis:   n.Cross(major).Normalize(),
		MajorRadius: c.Radius / math.Sin(theta),
		MinorRadius: c.Radius,
	}
	result.Curve = ellipse
	result.Loops = []Loop{sampleLoop(ellipse.Point, o.Segments)}
	return result
}

// CutCylinder returns the analytic section when one exists and otherwise
// tessellates c and cuts the mesh.
func CutCylinder(c Cylinder, p geometry.Plane, opts ...Option) Result {
	result := SolveCylinder(c, p, opts...)
	if !result.NeedsMesh {
		return result
	}

	o := buildOptions(opts)
	height := c.Height
	if height <= 0 {
		// unbounded cylinders still need caps to tessellate
		height = 2 * c.Radius
	}
	m := mesh.Cylinder(c.Center, c.Axis, c.Radius, height, o.Segments)
	o.Logger.Debug("cylinder fallback to mesh", "triangles", m.TriangleCount())
	return IntersectMesh(m, p, opts...)
}

func ellipsePoint(center, major, minor geometry.Vector3, majorRadius, minorRadius, phi float64) geometry.Vector3 {
	return center.
		Add(major.Mul(math.Cos(phi) * majorRadius)).
		Add(minor.Mul(math.Sin(phi) * minorRadius))
}

func sampleLoop(at func(phi float64) geometry.Vector3, segments int) Loop {
	points := make([]geometry.Vector3, segments)
	for i := range points {
		points[i] = at(2 * math.Pi * float64(i) / float64(segments))
	}
	return Loop{Points: points, Closed: true, Segments: segments}
}
