// Package mesh provides read access to triangulated solids stored as flat
// buffers: x,y,z position triples plus an optional triangle index buffer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gosection/pkg/geometry"
)

// ErrMalformed is wrapped by Validate for buffers that cannot describe whole
// triangles.
var ErrMalformed = errors.New("malformed mesh")

// Mesh is a triangle mesh in flat form.
// Positions holds 3 floats per vertex. Indices holds 3 vertex indices per
// triangle; when it is empty, Positions is read as consecutive triangles.
type Mesh struct {
	Positions []float64
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Indexed reports whether the mesh uses an index buffer.
func (m Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// TriangleCount returns the number of triangles, including any that
// reference invalid vertices.
func (m Mesh) TriangleCount() int {
	if m.Indexed() {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 9
}

// IsEmpty returns true if the mesh has no triangles.
func (m Mesh) IsEmpty() bool {
	return m.TriangleCount() == 0
}

// Vertex returns vertex i. ok is false when i is out of range.
func (m Mesh) Vertex(i int) (geometry.Vector3, bool) {
	if i < 0 || 3*i+2 >= len(m.Positions) {
		return geometry.Vector3{}, false
	}
	return geometry.NewVector3(m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]), true
}

// Triangle returns triangle i. ok is false when the triangle or one of its
// vertices does not exist.
func (m Mesh) Triangle(i int) (geometry.Triangle, bool) {
	if i < 0 || i >= m.TriangleCount() {
		return geometry.Triangle{}, false
	}

	var corners [3]int
	for k := 0; k < 3; k++ {
		if m.Indexed() {
			corners[k] = int(m.Indices[3*i+k])
		} else {
			corners[k] = 3*i + k
		}
	}

	var vs [3]geometry.Vector3
	for k, c := range corners {
		v, ok := m.Vertex(c)
		if !ok {
			return geometry.Triangle{}, false
		}
		vs[k] = v
	}
	return geometry.NewTriangle(vs[0], vs[1], vs[2]), true
}

// Each calls fn for every valid triangle in buffer order. Triangles with
// out-of-range indices are skipped.
func (m Mesh) Each(fn func(i int, t geometry.Triangle)) {
	n := m.TriangleCount()
	for i := 0; i < n; i++ {
		if t, ok := m.Triangle(i); ok {
			fn(i, t)
		}
	}
}

// Validate reports buffer problems that make Each skip data.
func (m Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position values is not a multiple of 3", ErrMalformed, len(m.Positions))
	}
	if !m.Indexed() {
		if len(m.Positions)%9 != 0 {
			return fmt.Errorf("%w: %d vertices do not form whole triangles", ErrMalformed, m.VertexCount())
		}
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrMalformed, len(m.Indices))
	}
	vertexCount := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d at position %d exceeds vertex count %d", ErrMalformed, idx, i, vertexCount)
		}
	}
	return nil
}

// BoundingBox returns the box around all vertices.
func (m Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := 0; i < m.VertexCount(); i++ {
		v, _ := m.Vertex(i)
		bbox.Extend(v)
	}
	return bbox
}

// FromTriangles builds a non-indexed mesh.
func FromTriangles(triangles []geometry.Triangle) Mesh {
	positions := make([]float64, 0, len(triangles)*9)
	for _, t := range triangles {
		for _, v := range t.Vertices() {
			positions = append(positions, v.X, v.Y, v.Z)
		}
	}
	return Mesh{Positions: positions}
}

// Merge concatenates meshes into one indexed mesh. Non-indexed inputs get
// sequential indices.
func Merge(meshes ...Mesh) Mesh {
	var out Mesh
	for _, m := range meshes {
		base := uint32(out.VertexCount())
		out.Positions = append(out.Positions, m.Positions[:3*m.VertexCount()]...)
		if m.Indexed() {
			for _, idx := range m.Indices {
				out.Indices = append(out.Indices, base+idx)
			}
			continue
		}
		for i := 0; i < 3*m.TriangleCount(); i++ {
			out.Indices = append(out.Indices, base+uint32(i))
		}
	}
	return out
}
