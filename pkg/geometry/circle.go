package geometry

import (
	"errors"
	"math"
)

var (
	// ErrTooFewPoints is returned when a fit needs more input points
	ErrTooFewPoints = errors.New("need at least 3 points to fit a circle")
	// ErrCollinear is returned when the sample points lie on a line
	ErrCollinear = errors.New("points are collinear")
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// FitCircle fits a circle to points lying in plane.
//
// The points are expressed in the plane's own 2D basis and a circle is put
// through three samples a third of the loop apart with the 3-point
// determinant formula
//
//	D  = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
//
// and the standard deviation of all point distances from that circle is
// reported as fit quality.
func FitCircle(points []Vector3, plane Plane) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}

	u, v := plane.Basis()
	origin := plane.Point
	to2D := func(p Vector3) (float64, float64) {
		d := p.Sub(origin)
		return d.Dot(u), d.Dot(v)
	}

	// Samples spread over an ordered loop keep D well conditioned
	x1, y1 := to2D(points[0])
	x2, y2 := to2D(points[len(points)/3])
	x3, y3 := to2D(points[2*len(points)/3])

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, ErrCollinear
	}

	x1sq := x1*x1 + y1*y1
	x2sq := x2*x2 + y2*y2
	x3sq := x3*x3 + y3*y3

	cx := (x1sq*(y2-y3) + x2sq*(y3-y1) + x3sq*(y1-y2)) / D
	cy := (x1sq*(x3-x2) + x2sq*(x1-x3) + x3sq*(x2-x1)) / D
	radius := math.Hypot(x1-cx, y1-cy)

	var sumError float64
	for _, p := range points {
		px, py := to2D(p)
		e := math.Hypot(px-cx, py-cy) - radius
		sumError += e * e
	}

	return &CircleFit{
		Center: origin.Add(u.Mul(cx)).Add(v.Mul(cy)),
		Radius: radius,
		Normal: plane.Normal,
		StdDev: math.Sqrt(sumError / float64(len(points))),
	}, nil
}
