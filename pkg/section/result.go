package section

import (
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/samber/lo"
)

// Segment is the piece of a plane cut contributed by one triangle
type Segment struct {
	A, B geometry.Vector3
}

// Loop is one connected piece of a section curve in traversal order. A
// closed loop does not repeat its first point at the end.
type Loop struct {
	Points []geometry.Vector3
	Closed bool
	// Segments counts the welded segments the loop was traced from
	Segments int
}

// Len returns the number of stored points
func (l Loop) Len() int {
	return len(l.Points)
}

// Edges returns the loop's edges, including the implicit closing edge of a
// closed loop.
func (l Loop) Edges() []Segment {
	n := len(l.Points)
	if n < 2 {
		return nil
	}
	count := n - 1
	if l.Closed {
		count = n
	}
	edges := make([]Segment, 0, count)
	for i := 0; i < count; i++ {
		edges = append(edges, Segment{A: l.Points[i], B: l.Points[(i+1)%n]})
	}
	return edges
}

// Length returns the polyline length, including the closing edge
func (l Loop) Length() float64 {
	return lo.SumBy(l.Edges(), func(s Segment) float64 {
		return s.A.Distance(s.B)
	})
}

// Stats records how many items each pipeline stage produced
type Stats struct {
	Triangles         int `json:"triangles"`
	RawSegments       int `json:"rawSegments"`
	WeldedSegments    int `json:"weldedSegments"`
	UniquePoints      int `json:"uniquePoints"`
	UsedSegments      int `json:"usedSegments"`
	DiscardedSegments int `json:"discardedSegments"`
}

// Result is everything one plane cut produced
type Result struct {
	Loops []Loop
	Curve Curve
	// NeedsMesh is set by analytic solvers that cannot describe the cut;
	// the caller should run the mesh path instead.
	NeedsMesh bool
	Stats     Stats
}

// Kind returns the curve kind, treating a missing curve as a polygon
func (r Result) Kind() CurveKind {
	if r.Curve == nil {
		return KindPolygon
	}
	return r.Curve.Kind()
}

// Empty reports whether the cut produced no loops
func (r Result) Empty() bool {
	return len(r.Loops) == 0
}

// Points returns the points of all loops concatenated in loop order
func (r Result) Points() []geometry.Vector3 {
	return lo.FlatMap(r.Loops, func(l Loop, _ int) []geometry.Vector3 {
		return l.Points
	})
}

// Closed reports whether there is at least one loop and all loops are
// closed.
func (r Result) Closed() bool {
	return len(r.Loops) > 0 && lo.EveryBy(r.Loops, func(l Loop) bool {
		return l.Closed
	})
}
