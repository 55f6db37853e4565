package stl

import (
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromMesh copies the triangles of m into a model
func FromMesh(name string, m mesh.Mesh) *Model {
	model := NewModel(name)
	m.Each(func(_ int, t geometry.Triangle) {
		model.AddTriangle(t)
	})
	return model
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Mesh returns the model as a flat, non-indexed mesh. STL stores every
// triangle with its own corners; the section engine welds them.
func (m *Model) Mesh() mesh.Mesh {
	return mesh.FromTriangles(m.Triangles)
}
