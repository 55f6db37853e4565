package section

import (
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
)

type cellKey [3]int64

// Welder maps points to canonical points. A point closer than the tolerance
// to an already registered point is replaced by the earliest such point;
// otherwise it is registered itself. Lookups go through a grid hash with
// cells of the tolerance size, so they cost the same as a linear scan
// over the handful of points in the 27 surrounding cells.
type Welder struct {
	tolerance float64
	points    []geometry.Vector3
	cells     map[cellKey][]int
}

// NewWelder creates a welder. Non-positive tolerances fall back to
// DefaultTolerance.
func NewWelder(tolerance float64) *Welder {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Welder{
		tolerance: tolerance,
		cells:     make(map[cellKey][]int),
	}
}

// Weld returns the index of the canonical point for p
func (w *Welder) Weld(p geometry.Vector3) int {
	key := w.key(p)
	if idx, ok := w.find(p, key); ok {
		return idx
	}
	idx := len(w.points)
	w.points = append(w.points, p)
	w.cells[key] = append(w.cells[key], idx)
	return idx
}

// Point returns canonical point idx
func (w *Welder) Point(idx int) geometry.Vector3 {
	return w.points[idx]
}

// Points returns all canonical points in registration order
func (w *Welder) Points() []geometry.Vector3 {
	return w.points
}

// Len returns the number of canonical points
func (w *Welder) Len() int {
	return len(w.points)
}

func (w *Welder) key(p geometry.Vector3) cellKey {
	return cellKey{
		int64(math.Round(p.X / w.tolerance)),
		int64(math.Round(p.Y / w.tolerance)),
		int64(math.Round(p.Z / w.tolerance)),
	}
}

func (w *Welder) find(p geometry.Vector3, key cellKey) (int, bool) {
	best := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, idx := range w.cells[cellKey{key[0] + dx, key[1] + dy, key[2] + dz}] {
					if (best < 0 || idx < best) && w.points[idx].ApproxEqual(p, w.tolerance) {
						best = idx
					}
				}
			}
		}
	}
	return best, best >= 0
}

// edge is a welded segment as a pair of canonical point indices
type edge [2]int

// weldSegments canonicalizes segment endpoints. Segments collapsing to a
// point are dropped, as are repeats of an edge already kept in either
// direction.
func weldSegments(w *Welder, segments []Segment) []edge {
	edges := make([]edge, 0, len(segments))
	seen := make(map[edge]struct{}, len(segments))
	for _, s := range segments {
		a, b := w.Weld(s.A), w.Weld(s.B)
		if a == b {
			continue
		}
		key := edge{min(a, b), max(a, b)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		edges = append(edges, edge{a, b})
	}
	return edges
}

// Dedupe welds segment endpoints with tolerance eps and returns the
// surviving segments in input order, each endpoint replaced by its
// canonical point. Dedupe of its own output returns that output unchanged.
func Dedupe(segments []Segment, eps float64) []Segment {
	w := NewWelder(eps)
	edges := weldSegments(w, segments)
	out := make([]Segment, len(edges))
	for i, e := range edges {
		out[i] = Segment{A: w.Point(e[0]), B: w.Point(e[1])}
	}
	return out
}
