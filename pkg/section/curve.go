package section

import "github.com/philipparndt/gosection/pkg/geometry"

// CurveKind names the shape of a section curve
type CurveKind int

const (
	KindPolygon CurveKind = iota
	KindCircle
	KindEllipse
	KindParabola
	KindHyperbola
)

// String returns the lower-case curve name
func (k CurveKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindParabola:
		return "parabola"
	case KindHyperbola:
		return "hyperbola"
	default:
		return "polygon"
	}
}

// Curve describes what a section result is: Polygon, Circle or Ellipse.
// Only the analytic variants carry parameters; the set of implementations
// is closed. Parabolic and hyperbolic cuts are only ever classified, see
// ClassifyCone, and have no Curve value.
type Curve interface {
	Kind() CurveKind
	isCurve()
}

// Polygon tags a result assembled from mesh segments
type Polygon struct{}

// Circle is an exact circular section
type Circle struct {
	Center geometry.Vector3
	Normal geometry.Vector3
	// U and V span the circle plane; points are Center + R(cos φ U + sin φ V)
	U, V   geometry.Vector3
	Radius float64
}

// Ellipse is an exact elliptical section
type Ellipse struct {
	Center      geometry.Vector3
	MajorAxis   geometry.Vector3
	MinorAxis   geometry.Vector3
	MajorRadius float64
	MinorRadius float64
}

func (Polygon) Kind() CurveKind { return KindPolygon }
func (Circle) Kind() CurveKind  { return KindCircle }
func (Ellipse) Kind() CurveKind { return KindEllipse }

func (Polygon) isCurve() {}
func (Circle) isCurve()  {}
func (Ellipse) isCurve() {}

// Point returns the circle point at angle phi
func (c Circle) Point(phi float64) geometry.Vector3 {
	return ellipsePoint(c.Center, c.U, c.V, c.Radius, c.Radius, phi)
}

// Point returns the ellipse point at parameter phi
func (e Ellipse) Point(phi float64) geometry.Vector3 {
	return ellipsePoint(e.Center, e.MajorAxis, e.MinorAxis, e.MajorRadius, e.MinorRadius, phi)
}
