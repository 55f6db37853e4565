package geometry

import "math"

// Plane is a point on the plane plus a unit normal.
type Plane struct {
	Point  Vector3
	Normal Vector3
}

// NewPlane creates a plane through point. The normal does not need to be
// normalized; a zero normal produces an invalid plane.
func NewPlane(point, normal Vector3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// Valid reports whether the plane has a usable normal. The normal does
// not have to be unit length; see Normalized.
func (p Plane) Valid() bool {
	l := p.Normal.Length()
	return l > 0 && !math.IsInf(l, 0) && !math.IsNaN(l)
}

// Normalized returns p with a unit normal
func (p Plane) Normalized() Plane {
	return NewPlane(p.Point, p.Normal)
}

// SignedDistance returns (q - Point) · Normal. Positive values lie on the
// side the normal points to.
func (p Plane) SignedDistance(q Vector3) float64 {
	return q.Sub(p.Point).Dot(p.Normal)
}

// Project returns the orthogonal projection of q onto the plane
func (p Plane) Project(q Vector3) Vector3 {
	return q.Sub(p.Normal.Mul(p.SignedDistance(q)))
}

// IntersectLine returns the point where the line origin + t*dir crosses the
// plane. ok is false when the line is parallel to the plane.
func (p Plane) IntersectLine(origin, dir Vector3) (Vector3, bool) {
	denom := dir.Dot(p.Normal)
	if math.Abs(denom) < 1e-12 {
		return Vector3{}, false
	}
	t := -p.SignedDistance(origin) / denom
	return origin.Add(dir.Mul(t)), true
}

// Basis returns two unit vectors spanning the plane such that
// u × v == Normal.
func (p Plane) Basis() (u, v Vector3) {
	u = p.Normal.Perpendicular()
	v = p.Normal.Cross(u).Normalize()
	return u, v
}
