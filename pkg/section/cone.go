package section

import (
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
)

// ClassifyCone names the conic cut by plane p through a cone with the
// given half-angle (radians) around axis. The plane is compared by the
// angle it makes with the axis: perpendicular gives a circle, steeper than
// the half-angle an ellipse, equal a parabola, shallower a hyperbola.
//
// Only the kind is derived. Sampling conic points is not implemented.
func ClassifyCone(halfAngle float64, axis geometry.Vector3, p geometry.Plane) CurveKind {
	a := axis.Normalize()
	p = p.Normalized()
	if a.IsZero() || !p.Valid() {
		return KindPolygon
	}

	cosTheta := math.Min(1, math.Abs(a.Dot(p.Normal)))
	if 1-cosTheta < axisAngleEpsilon {
		return KindCircle
	}

	planeAxisAngle := math.Pi/2 - math.Acos(cosTheta)
	switch {
	case math.Abs(planeAxisAngle-halfAngle) < axisAngleEpsilon:
		return KindParabola
	case planeAxisAngle > halfAngle:
		return KindEllipse
	default:
		return KindHyperbola
	}
}
