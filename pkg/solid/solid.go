// Package solid builds constructive solids from signed distance fields and
// tessellates them into meshes that can be cut like any loaded model.
package solid

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
)

// DefaultCells is the marching cubes resolution along the longest side of
// the bounding box
const DefaultCells = 100

// ErrEmpty is returned when a solid is built without a shape
var ErrEmpty = errors.New("empty solid")

// Solid is an immutable signed distance field. Every operation returns a
// new Solid.
type Solid struct {
	s sdf.SDF3
}

func vec(v geometry.Vector3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Box creates a box of the given size centered on the origin
func Box(size geometry.Vector3) (Solid, error) {
	s, err := sdf.Box3D(vec(size), 0)
	if err != nil {
		return Solid{}, fmt.Errorf("box %v: %w", size, err)
	}
	return Solid{s: s}, nil
}

// Cylinder creates a cylinder around the z axis centered on the origin
func Cylinder(height, radius float64) (Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return Solid{}, fmt.Errorf("cylinder h=%g r=%g: %w", height, radius, err)
	}
	return Solid{s: s}, nil
}

// Tube creates a hollow cylinder around the z axis. The bore runs through
// both caps.
func Tube(height, outer, inner float64) (Solid, error) {
	if inner <= 0 || inner >= outer {
		return Solid{}, fmt.Errorf("tube inner radius must be in (0, %g), got %g", outer, inner)
	}
	o, err := Cylinder(height, outer)
	if err != nil {
		return Solid{}, err
	}
	// the bore is longer so it never leaves a skin over the caps
	i, err := Cylinder(height*1.5, inner)
	if err != nil {
		return Solid{}, err
	}
	return o.Difference(i), nil
}

// Valid reports whether s holds a shape
func (s Solid) Valid() bool {
	return s.s != nil
}

// Union returns s ∪ o
func (s Solid) Union(o Solid) Solid {
	return Solid{s: sdf.Union3D(s.s, o.s)}
}

// Difference returns s minus o
func (s Solid) Difference(o Solid) Solid {
	return Solid{s: sdf.Difference3D(s.s, o.s)}
}

// Intersect returns s ∩ o
func (s Solid) Intersect(o Solid) Solid {
	return Solid{s: sdf.Intersect3D(s.s, o.s)}
}

// Translate moves the solid by d
func (s Solid) Translate(d geometry.Vector3) Solid {
	return Solid{s: sdf.Transform3D(s.s, sdf.Translate3d(vec(d)))}
}

// Rotate rotates the solid by Euler angles in degrees, applied around X,
// then Y, then Z.
func (s Solid) Rotate(x, y, z float64) Solid {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	m := sdf.RotateZ(rad(z)).Mul(sdf.RotateY(rad(y))).Mul(sdf.RotateX(rad(x)))
	return Solid{s: sdf.Transform3D(s.s, m)}
}

// Contains reports whether p lies inside or on the surface
func (s Solid) Contains(p geometry.Vector3) bool {
	return s.s.Evaluate(vec(p)) <= 0
}

// BoundingBox returns the bounds of the distance field
func (s Solid) BoundingBox() geometry.BoundingBox {
	bb := s.s.BoundingBox()
	return geometry.BoundingBox{
		Min: geometry.NewVector3(bb.Min.X, bb.Min.Y, bb.Min.Z),
		Max: geometry.NewVector3(bb.Max.X, bb.Max.Y, bb.Max.Z),
	}
}

// Mesh tessellates the solid with uniform marching cubes. cells is the
// number of cubes along the longest side; non-positive values use
// DefaultCells. The mesh is not indexed.
func (s Solid) Mesh(cells int) (mesh.Mesh, error) {
	if !s.Valid() {
		return mesh.Mesh{}, ErrEmpty
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	triangles := render.ToTriangles(s.s, render.NewMarchingCubesUniform(cells))

	positions := make([]float64, 0, len(triangles)*9)
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			positions = append(positions, v.X, v.Y, v.Z)
		}
	}
	return mesh.Mesh{Positions: positions}, nil
}
