package section

import (
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
)

// Assembler chains welded segments into loops.
type Assembler struct {
	Tolerance float64
	Branch    BranchPolicy
	// Normal is the cutting plane normal; BranchSharpestTurn measures turn
	// angles around it and falls back to BranchFirst when it is zero.
	Normal geometry.Vector3
}

// Assemble welds segments and traces them into loops. Every welded segment
// ends up in exactly one traced chain; chains shorter than 3 points are
// discarded and counted in Stats.DiscardedSegments.
func (a Assembler) Assemble(segments []Segment) ([]Loop, Stats) {
	w := NewWelder(a.Tolerance)
	edges := weldSegments(w, segments)
	loops, used, discarded := a.assembleEdges(w.Points(), edges)
	return loops, Stats{
		RawSegments:       len(segments),
		WeldedSegments:    len(edges),
		UniquePoints:      w.Len(),
		UsedSegments:      used,
		DiscardedSegments: discarded,
	}
}

// Assemble traces segments into loops with the default branch policy
func Assemble(segments []Segment, eps float64) []Loop {
	loops, _ := Assembler{Tolerance: eps}.Assemble(segments)
	return loops
}

type tracer struct {
	Assembler
	points    []geometry.Vector3
	edges     []edge
	incidence [][]int
	used      []bool
}

func (a Assembler) assembleEdges(points []geometry.Vector3, edges []edge) (loops []Loop, used, discarded int) {
	t := &tracer{
		Assembler: a,
		points:    points,
		edges:     edges,
		incidence: make([][]int, len(points)),
		used:      make([]bool, len(edges)),
	}
	for i, e := range edges {
		t.incidence[e[0]] = append(t.incidence[e[0]], i)
		t.incidence[e[1]] = append(t.incidence[e[1]], i)
	}

	for seed := range edges {
		if t.used[seed] {
			continue
		}
		chain, closed, count := t.trace(seed)
		if len(chain) < 3 {
			discarded += count
			continue
		}
		used += count

		loop := Loop{
			Points:   make([]geometry.Vector3, len(chain)),
			Closed:   closed,
			Segments: count,
		}
		for i, idx := range chain {
			loop.Points[i] = points[idx]
		}
		loops = append(loops, loop)
	}
	return loops, used, discarded
}

// trace grows a chain of point indices from a seed edge, first forward
// from its tail, then backward from its head. The returned chain of a
// closed loop does not repeat the head.
func (t *tracer) trace(seed int) (chain []int, closed bool, count int) {
	t.used[seed] = true
	count = 1
	chain = []int{t.edges[seed][0], t.edges[seed][1]}
	head := chain[0]

	for {
		at, from := chain[len(chain)-1], chain[len(chain)-2]
		next, ok := t.advance(at, from)
		if !ok {
			break
		}
		count++
		if next == head && len(chain) > 2 {
			closed = true
			break
		}
		chain = append(chain, next)
	}
	if closed {
		return chain, true, count
	}

	var prefix []int
	at, from := chain[0], chain[1]
	for {
		next, ok := t.advance(at, from)
		if !ok {
			break
		}
		count++
		prefix = append(prefix, next)
		at, from = next, at
	}
	if len(prefix) > 0 {
		grown := make([]int, 0, len(prefix)+len(chain))
		for i := len(prefix) - 1; i >= 0; i-- {
			grown = append(grown, prefix[i])
		}
		chain = append(grown, chain...)
	}

	return chain, false, count
}

// advance consumes the next unused edge leaving point at and returns its
// far end.
func (t *tracer) advance(at, from int) (int, bool) {
	best := -1
	bestTurn := math.Inf(-1)
	for _, ei := range t.incidence[at] {
		if t.used[ei] {
			continue
		}
		if t.Branch != BranchSharpestTurn || t.Normal.IsZero() {
			best = ei
			break
		}
		turn := t.turn(from, at, t.other(ei, at))
		if turn > bestTurn {
			best, bestTurn = ei, turn
		}
	}
	if best < 0 {
		return 0, false
	}
	t.used[best] = true
	return t.other(best, at), true
}

func (t *tracer) other(ei, at int) int {
	e := t.edges[ei]
	if e[0] == at {
		return e[1]
	}
	return e[0]
}

// turn returns the signed angle from the incoming direction to the
// outgoing one, counter-clockwise around the normal positive.
func (t *tracer) turn(from, at, to int) float64 {
	in := t.points[at].Sub(t.points[from])
	out := t.points[to].Sub(t.points[at])
	return math.Atan2(in.Cross(out).Dot(t.Normal), in.Dot(out))
}
