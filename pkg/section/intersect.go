package section

import (
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
	"golang.org/x/sync/errgroup"
)

// IntersectTriangle returns the segment where plane p crosses t.
//
// Each edge a→b contributes a itself when a lies on the plane, or the
// interpolated crossing when a and b lie strictly on opposite sides. Exactly
// two contributions form a segment; triangles that only touch the plane or
// lie in it yield nothing.
func IntersectTriangle(t geometry.Triangle, p geometry.Plane) (Segment, bool) {
	vs := t.Vertices()
	var d [3]float64
	onPlane := 0
	for i, v := range vs {
		d[i] = p.SignedDistance(v)
		if math.Abs(d[i]) < planeEpsilon {
			onPlane++
		}
	}
	if onPlane == 3 {
		return Segment{}, false
	}

	var hits [2]geometry.Vector3
	n := 0
	for i := 0; i < 3 && n < 2; i++ {
		j := (i + 1) % 3
		da, db := d[i], d[j]

		if math.Abs(da) < planeEpsilon {
			hits[n] = vs[i]
			n++
			continue
		}
		if math.Abs(db) < planeEpsilon || (da > 0) == (db > 0) {
			continue
		}
		denom := da - db
		if math.Abs(denom) < planeEpsilon {
			continue
		}
		hits[n] = vs[i].Lerp(vs[j], da/denom)
		n++
	}

	if n != 2 {
		return Segment{}, false
	}
	return Segment{A: hits[0], B: hits[1]}, true
}

// IntersectTriangles cuts every valid triangle of m and returns the raw
// segments in triangle order. With workers > 1 the triangles are split into
// contiguous chunks that are processed concurrently; the output is the same
// as the sequential one.
func IntersectTriangles(m mesh.Mesh, p geometry.Plane, workers int) []Segment {
	count := m.TriangleCount()
	if workers < 2 || count < 2*workers {
		return intersectRange(m, p, 0, count)
	}

	chunk := (count + workers - 1) / workers
	parts := make([][]Segment, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, count)
		if start >= end {
			break
		}
		g.Go(func() error {
			parts[w] = intersectRange(m, p, start, end)
			return nil
		})
	}
	// chunks never fail; Wait only joins them
	_ = g.Wait()

	var total int
	for _, part := range parts {
		total += len(part)
	}
	segments := make([]Segment, 0, total)
	for _, part := range parts {
		segments = append(segments, part...)
	}
	return segments
}

func intersectRange(m mesh.Mesh, p geometry.Plane, start, end int) []Segment {
	var segments []Segment
	for i := start; i < end; i++ {
		t, ok := m.Triangle(i)
		if !ok {
			continue
		}
		if s, ok := IntersectTriangle(t, p); ok {
			segments = append(segments, s)
		}
	}
	return segments
}
