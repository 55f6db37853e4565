package section

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox(center geometry.Vector3) mesh.Mesh {
	return mesh.CenteredBox(center, v(2, 2, 2))
}

// assertSquare checks that l holds exactly the four corners of the 2×2
// square around center in the plane y = center.Y.
func assertSquare(t *testing.T, l Loop, center geometry.Vector3) {
	t.Helper()
	require.Equal(t, 4, l.Len())
	corners := []geometry.Vector3{
		center.Add(v(-1, 0, -1)),
		center.Add(v(1, 0, -1)),
		center.Add(v(1, 0, 1)),
		center.Add(v(-1, 0, 1)),
	}
	for _, c := range corners {
		found := 0
		for _, p := range l.Points {
			if p.ApproxEqual(c, 1e-9) {
				found++
			}
		}
		assert.Equal(t, 1, found, "corner %v", c)
	}
}

func TestIntersectMeshBox(t *testing.T) {
	result := IntersectMesh(unitBox(v(0, 0, 0)), planeY0)

	require.Len(t, result.Loops, 1)
	assert.True(t, result.Closed())
	assert.Equal(t, KindPolygon, result.Kind())
	assertSquare(t, result.Loops[0], v(0, 0, 0))
	assert.InDelta(t, 8.0, result.Loops[0].Length(), 1e-12)
	assert.Len(t, result.Points(), 4)

	assert.Equal(t, 12, result.Stats.Triangles)
	assert.Equal(t, 8, result.Stats.RawSegments)
	assert.Equal(t, 8, result.Stats.WeldedSegments)
	assert.Equal(t, 8, result.Stats.UniquePoints)
	assert.Equal(t, 8, result.Stats.UsedSegments)
	assert.Zero(t, result.Stats.DiscardedSegments)
}

func TestIntersectMeshBoxWithoutSimplify(t *testing.T) {
	result := IntersectMesh(unitBox(v(0, 0, 0)), planeY0, WithSimplify(false))

	require.Len(t, result.Loops, 1)
	assert.True(t, result.Loops[0].Closed)
	// face diagonals leave a midpoint on every side
	assert.Equal(t, 8, result.Loops[0].Len())
	assert.InDelta(t, 8.0, result.Loops[0].Length(), 1e-12)
}

func TestIntersectMeshThroughFace(t *testing.T) {
	// the top face is coplanar and skipped, the side faces contribute its
	// outline through their on-plane edges
	result := IntersectMesh(unitBox(v(0, 0, 0)), geometry.NewPlane(v(0, 1, 0), v(0, 1, 0)))

	require.Len(t, result.Loops, 1)
	assert.True(t, result.Loops[0].Closed)
	assertSquare(t, result.Loops[0], v(0, 1, 0))
}

func TestIntersectMeshDisjointBoxes(t *testing.T) {
	m := mesh.Merge(unitBox(v(0, 0, 0)), unitBox(v(5, 0, 0)))
	result := IntersectMesh(m, planeY0)

	require.Len(t, result.Loops, 2)
	assert.True(t, result.Closed())

	var left, right *Loop
	for i := range result.Loops {
		l := &result.Loops[i]
		if l.Points[0].X < 2.5 {
			left = l
		} else {
			right = l
		}
	}
	require.NotNil(t, left)
	require.NotNil(t, right)
	assertSquare(t, *left, v(0, 0, 0))
	assertSquare(t, *right, v(5, 0, 0))
	for _, p := range left.Points {
		assert.Less(t, p.X, 2.5)
	}
	for _, p := range right.Points {
		assert.Greater(t, p.X, 2.5)
	}
}

func TestIntersectMeshCylinder(t *testing.T) {
	m := mesh.Cylinder(v(0, 0, 0), v(0, 0, 1), 1, 2, 32)
	result := IntersectMesh(m, geometry.NewPlane(v(0, 0, 0.3), v(0, 0, 1)))

	require.Len(t, result.Loops, 1)
	l := result.Loops[0]
	assert.True(t, l.Closed)
	assert.Equal(t, 32, l.Len())
	for _, p := range l.Points {
		assert.InDelta(t, 0.3, p.Z, 1e-12)
		assert.InDelta(t, 1.0, math.Hypot(p.X, p.Y), 1e-9)
	}
}

func TestIntersectMeshFlatTriangles(t *testing.T) {
	tris := []geometry.Triangle{
		geometry.NewTriangle(v(0, -1, 0), v(2, 1, 0), v(0, 1, 0)),
		geometry.NewTriangle(v(0, -1, 0), v(2, -1, 0), v(2, 1, 0)),
	}
	result := IntersectMesh(mesh.FromTriangles(tris), planeY0)

	require.Len(t, result.Loops, 1)
	l := result.Loops[0]
	assert.False(t, l.Closed)
	assert.False(t, result.Closed())
	// a straight open cut keeps its end points and its minimum size
	assert.ElementsMatch(t, []geometry.Vector3{v(0, 0, 0), v(2, 0, 0)}, []geometry.Vector3{l.Points[0], l.Points[len(l.Points)-1]})
	assert.Equal(t, 3, l.Len())
}

func TestIntersectMeshEmptyCases(t *testing.T) {
	box := unitBox(v(0, 0, 0))

	tests := []struct {
		name  string
		mesh  mesh.Mesh
		plane geometry.Plane
	}{
		{"plane misses", box, geometry.NewPlane(v(0, 5, 0), v(0, 1, 0))},
		{"zero normal", box, geometry.NewPlane(v(0, 0, 0), v(0, 0, 0))},
		{"empty mesh", mesh.Mesh{}, planeY0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IntersectMesh(tt.mesh, tt.plane)
			assert.True(t, result.Empty())
			assert.False(t, result.Closed())
			assert.Empty(t, result.Points())
			assert.Equal(t, tt.mesh.TriangleCount(), result.Stats.Triangles)
		})
	}
}

func TestIntersectMeshUnnormalizedPlane(t *testing.T) {
	tests := []struct {
		name  string
		plane geometry.Plane
	}{
		{"long normal", geometry.Plane{Normal: v(0, 2, 0)}},
		{"short normal", geometry.Plane{Normal: v(0, 1e-3, 0)}},
		{"flipped long normal", geometry.Plane{Normal: v(0, -7, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IntersectMesh(unitBox(v(0, 0, 0)), tt.plane)
			require.Len(t, result.Loops, 1)
			assert.True(t, result.Loops[0].Closed)
			assertSquare(t, result.Loops[0], v(0, 0, 0))
		})
	}
}

func TestIntersectMeshWorkersAgree(t *testing.T) {
	m := mesh.Merge(
		mesh.Cylinder(v(0, 0, 0), v(0.2, 0, 1), 1, 3, 48),
		unitBox(v(4, 0, 0)),
	)
	p := geometry.NewPlane(v(0, 0, 0.1), v(0.1, 0.3, 1))

	sequential := IntersectMesh(m, p)
	for _, workers := range []int{2, 4, 16} {
		assert.Equal(t, sequential, IntersectMesh(m, p, WithWorkers(workers)))
	}
}

func TestIntersectMeshInvariants(t *testing.T) {
	m := mesh.Merge(
		mesh.Cylinder(v(0, 0, 0), v(1, 1, 0), 0.5, 4, 24),
		unitBox(v(0, 0, 0)),
		unitBox(v(3, 1, 0)),
	)
	for _, normal := range []geometry.Vector3{v(0, 1, 0), v(1, 1, 1), v(0.3, -1, 0.2)} {
		p := geometry.NewPlane(v(0.1, 0.2, 0.05), normal)
		for _, branch := range []BranchPolicy{BranchFirst, BranchSharpestTurn} {
			result := IntersectMesh(m, p, WithBranchPolicy(branch))
			s := result.Stats
			assert.Equal(t, s.WeldedSegments, s.UsedSegments+s.DiscardedSegments)
			require.NotEmpty(t, result.Loops)
			for _, l := range result.Loops {
				// every solid is closed and cut away from its vertices
				assert.True(t, l.Closed)
				assert.GreaterOrEqual(t, l.Len(), 3)
				for _, q := range l.Points {
					assert.InDelta(t, 0, p.SignedDistance(q), 1e-9)
				}
			}
		}
	}
}

func TestIntersectMeshDoesNotModifyInput(t *testing.T) {
	m := unitBox(v(0, 0, 0))
	positions := append([]float64(nil), m.Positions...)
	indices := append([]uint32(nil), m.Indices...)

	IntersectMesh(m, planeY0, WithWorkers(4))

	assert.Equal(t, positions, m.Positions)
	assert.Equal(t, indices, m.Indices)
}

func TestIntersectMeshLogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	IntersectMesh(unitBox(v(0, 0, 0)), planeY0, WithLogger(logger))

	assert.Contains(t, buf.String(), "section computed")
	assert.Contains(t, buf.String(), "raw_segments=8")
	assert.Contains(t, buf.String(), "loops=1")
}

func TestCollinear(t *testing.T) {
	assert.True(t, collinear(v(0, 0, 0), v(1, 0, 0), v(2, 0, 0), 1e-4))
	assert.True(t, collinear(v(0, 0, 0), v(1, 5e-5, 0), v(2, 0, 0), 1e-4))
	assert.False(t, collinear(v(0, 0, 0), v(1, 0.1, 0), v(2, 0, 0), 1e-4))
	// a point doubling back is a corner, not a straight run
	assert.False(t, collinear(v(0, 0, 0), v(2, 0, 0), v(1, 0, 0), 1e-4))
	assert.False(t, collinear(v(0, 0, 0), v(1, 0, 0), v(0, 0, 0), 1e-4))
}

func TestSimplifyLoopRotatesToCorner(t *testing.T) {
	l := Loop{
		Points: []geometry.Vector3{
			v(1, 0, 0), // midpoint of the bottom edge
			v(2, 0, 0), v(2, 2, 0), v(1, 2, 0), v(0, 2, 0), v(0, 0, 0),
		},
		Closed:   true,
		Segments: 6,
	}

	got := simplifyLoop(l, 1e-4)
	assert.Equal(t, []geometry.Vector3{v(2, 0, 0), v(2, 2, 0), v(0, 2, 0), v(0, 0, 0)}, got.Points)
	assert.True(t, got.Closed)
	assert.Equal(t, 6, got.Segments)
}

func TestSimplifyLoopKeepsMinimum(t *testing.T) {
	line := Loop{Points: []geometry.Vector3{v(0, 0, 0), v(1, 0, 0), v(2, 0, 0), v(3, 0, 0)}}
	got := simplifyLoop(line, 1e-4)
	assert.Equal(t, line.Points, got.Points, "an open straight run cannot drop below 3 points")

	triangle := Loop{Points: []geometry.Vector3{v(0, 0, 0), v(1, 0, 0), v(0, 1, 0)}, Closed: true}
	assert.Equal(t, triangle, simplifyLoop(triangle, 1e-4))
}
