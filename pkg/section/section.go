// Package section computes the curves where a cutting plane meets a
// triangulated solid.
//
// The mesh path runs four stages: every triangle is intersected with the
// plane, the resulting segments are welded onto canonical points, and the
// welded segments are traced into ordered loops. The analytic path solves
// right circular cylinders directly and classifies cone sections.
//
// All functions are pure; results are freshly allocated and inputs are
// never modified.
package section

import (
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
)

// IntersectMesh cuts m with plane p and assembles the cut into loops.
// The plane normal is normalized first. A zero normal or a plane missing
// the mesh gives an empty result.
func IntersectMesh(m mesh.Mesh, p geometry.Plane, opts ...Option) Result {
	o := buildOptions(opts)
	p = p.Normalized()
	result := Result{Curve: Polygon{}}
	result.Stats.Triangles = m.TriangleCount()

	if !p.Valid() {
		o.Logger.Debug("section skipped", "reason", "invalid plane", "normal", p.Normal)
		return result
	}

	segments := IntersectTriangles(m, p, o.Workers)

	a := Assembler{Tolerance: o.Tolerance, Branch: o.Branch, Normal: p.Normal}
	loops, stats := a.Assemble(segments)
	stats.Triangles = result.Stats.Triangles
	if o.Simplify {
		for i := range loops {
			loops[i] = simplifyLoop(loops[i], o.Tolerance)
		}
	}
	result.Loops = loops
	result.Stats = stats

	o.Logger.Debug("section computed",
		"triangles", stats.Triangles,
		"raw_segments", stats.RawSegments,
		"welded_segments", stats.WeldedSegments,
		"points", stats.UniquePoints,
		"loops", len(loops),
		"discarded_segments", stats.DiscardedSegments,
	)
	return result
}
