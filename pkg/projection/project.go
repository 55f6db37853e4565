package projection

import (
	"github.com/paulmach/orb"
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/samber/lo"
)

// ProjectPoint returns the 2D drawing coordinates of p in view v
func ProjectPoint(p geometry.Vector3, v View) orb.Point {
	return orb.Point{p.Dot(v.Right()), p.Dot(v.Up())}
}

// ProjectLoop projects loop points in order. A closed loop is not
// repeated at the end; use Projected.Ring for that.
func ProjectLoop(points []geometry.Vector3, v View) orb.LineString {
	right, up := v.Right(), v.Up()
	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{p.Dot(right), p.Dot(up)}
	}
	return line
}

// Projected is one section loop drawn in one view
type Projected struct {
	View   View
	Loop   int
	Closed bool
	Line   orb.LineString
}

// Ring returns the line as a ring, closed by repeating the first point
func (p Projected) Ring() orb.Ring {
	ring := orb.Ring(p.Line.Clone())
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Bound returns the 2D bounding box of the projected loop
func (p Projected) Bound() orb.Bound {
	return p.Line.Bound()
}

// ProjectResult projects every loop of r into view v
func ProjectResult(r section.Result, v View) []Projected {
	return lo.Map(r.Loops, func(l section.Loop, i int) Projected {
		return Projected{
			View:   v,
			Loop:   i,
			Closed: l.Closed,
			Line:   ProjectLoop(l.Points, v),
		}
	})
}

// ProjectAll projects r into each of views, grouped by view
func ProjectAll(r section.Result, views []View) map[View][]Projected {
	out := make(map[View][]Projected, len(views))
	for _, v := range views {
		out[v] = ProjectResult(r, v)
	}
	return out
}

// Extent returns the bounding box of all projected loops. ok is false
// when there are no points.
func Extent(projected []Projected) (b orb.Bound, ok bool) {
	for _, p := range projected {
		if len(p.Line) == 0 {
			continue
		}
		if !ok {
			b, ok = p.Bound(), true
			continue
		}
		b = b.Union(p.Bound())
	}
	return b, ok
}
