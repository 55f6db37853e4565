package section

import (
	"testing"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

var planeY0 = geometry.NewPlane(v(0, 0, 0), v(0, 1, 0))

func assertSegment(t *testing.T, s Segment, a, b geometry.Vector3) {
	t.Helper()
	if s.A.ApproxEqual(a, 1e-12) {
		assert.True(t, s.B.ApproxEqual(b, 1e-12), "expected %v-%v, got %v", a, b, s)
		return
	}
	assert.True(t, s.A.ApproxEqual(b, 1e-12) && s.B.ApproxEqual(a, 1e-12), "expected %v-%v, got %v", a, b, s)
}

func TestIntersectTriangleCrossing(t *testing.T) {
	tri := geometry.NewTriangle(v(0, -1, 0), v(2, 1, 0), v(0, 1, 2))

	s, ok := IntersectTriangle(tri, planeY0)
	require.True(t, ok)
	assertSegment(t, s, v(1, 0, 0), v(0, 0, 1))
}

func TestIntersectTriangleInterpolatesUnevenDistances(t *testing.T) {
	tri := geometry.NewTriangle(v(0, -3, 0), v(0, 1, 0), v(4, 1, 0))

	s, ok := IntersectTriangle(tri, planeY0)
	require.True(t, ok)
	// t = 3/4 along both edges leaving the lower vertex
	assertSegment(t, s, v(0, 0, 0), v(3, 0, 0))
}

func TestIntersectTriangleVertexOnPlane(t *testing.T) {
	tri := geometry.NewTriangle(v(0, 0, 0), v(1, 1, 0), v(1, -1, 0))

	s, ok := IntersectTriangle(tri, planeY0)
	require.True(t, ok)
	assertSegment(t, s, v(0, 0, 0), v(1, 0, 0))
}

func TestIntersectTriangleEdgeOnPlane(t *testing.T) {
	tri := geometry.NewTriangle(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0))

	s, ok := IntersectTriangle(tri, planeY0)
	require.True(t, ok)
	assertSegment(t, s, v(0, 0, 0), v(1, 0, 0))
}

func TestIntersectTriangleNoSegment(t *testing.T) {
	cases := []struct {
		name string
		tri  geometry.Triangle
	}{
		{"above", geometry.NewTriangle(v(0, 1, 0), v(1, 2, 0), v(0, 3, 1))},
		{"below", geometry.NewTriangle(v(0, -1, 0), v(1, -2, 0), v(0, -3, 1))},
		{"touching vertex", geometry.NewTriangle(v(0, 0, 0), v(1, 1, 0), v(0, 1, 1))},
		{"coplanar", geometry.NewTriangle(v(0, 0, 0), v(1, 0, 0), v(0, 0, 1))},
		{"nearly coplanar", geometry.NewTriangle(v(0, 1e-12, 0), v(1, -1e-12, 0), v(0, 0, 1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := IntersectTriangle(tc.tri, planeY0)
			assert.False(t, ok)
		})
	}
}

func TestIntersectTriangleObliquePlane(t *testing.T) {
	p := geometry.NewPlane(v(0, 0, 0), v(1, 1, 0))
	tri := geometry.NewTriangle(v(1, 0, 0), v(-1, 0, 0), v(0, 0, 1))

	s, ok := IntersectTriangle(tri, p)
	require.True(t, ok)
	assert.InDelta(t, 0, p.SignedDistance(s.A), 1e-12)
	assert.InDelta(t, 0, p.SignedDistance(s.B), 1e-12)
}

func TestIntersectTrianglesParallelMatchesSequential(t *testing.T) {
	m := mesh.Cylinder(v(0, 0, 0), v(0.2, 1, 0.1), 1, 3, 97)
	p := geometry.NewPlane(v(0, 0.3, 0), v(0.1, 1, -0.2))

	sequential := IntersectTriangles(m, p, 1)
	require.NotEmpty(t, sequential)

	for _, workers := range []int{2, 3, 8} {
		assert.Equal(t, sequential, IntersectTriangles(m, p, workers), "workers=%d", workers)
	}
}

func TestIntersectTrianglesSkipsBadIndices(t *testing.T) {
	m := mesh.Mesh{
		Positions: []float64{0, -1, 0, 2, 1, 0, 0, 1, 2},
		Indices:   []uint32{0, 1, 2, 0, 1, 9},
	}
	assert.Len(t, IntersectTriangles(m, planeY0, 1), 1)
}
