package section

import "github.com/philipparndt/gosection/pkg/geometry"

// collinear reports whether p lies on the straight run from prev to next:
// within tolerance of the line and strictly between the two.
func collinear(prev, p, next geometry.Vector3, tolerance float64) bool {
	in := p.Sub(prev)
	out := next.Sub(p)
	if in.Dot(out) <= 0 {
		return false
	}
	span := next.Sub(prev)
	length := span.Length()
	if length == 0 {
		return false
	}
	// distance from p to the prev-next line
	return in.Cross(span).Length()/length < tolerance
}

// simplifyLoop drops points that lie on a straight run between their
// neighbours, such as the midpoints a triangulated flat face leaves on a
// cut. Open loops keep their end points and no loop drops below 3 points.
func simplifyLoop(l Loop, tolerance float64) Loop {
	n := len(l.Points)
	if n <= 3 {
		return l
	}

	points := l.Points
	if l.Closed {
		start := -1
		for i := 0; i < n; i++ {
			if !collinear(points[(i+n-1)%n], points[i], points[(i+1)%n], tolerance) {
				start = i
				break
			}
		}
		if start < 0 {
			return l
		}
		rotated := make([]geometry.Vector3, 0, n)
		rotated = append(rotated, points[start:]...)
		points = append(rotated, points[:start]...)
	}

	kept := make([]geometry.Vector3, 0, n)
	kept = append(kept, points[0])
	for i := 1; i < n; i++ {
		var next geometry.Vector3
		switch {
		case i < n-1:
			next = points[i+1]
		case l.Closed:
			next = kept[0]
		default:
			kept = append(kept, points[i])
			continue
		}
		if collinear(kept[len(kept)-1], points[i], next, tolerance) {
			continue
		}
		kept = append(kept, points[i])
	}

	if len(kept) < 3 {
		return l
	}
	return Loop{Points: kept, Closed: l.Closed, Segments: l.Segments}
}
