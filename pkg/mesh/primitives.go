package mesh

import (
	"math"

	"github.com/philipparndt/gosection/pkg/geometry"
)

// Box returns a closed, indexed box spanning min to max with outward
// winding.
func Box(min, max geometry.Vector3) Mesh {
	m := Mesh{}
	for i := 0; i < 8; i++ {
		x, y, z := min.X, min.Y, min.Z
		if i&1 != 0 {
			x = max.X
		}
		if i&2 != 0 {
			y = max.Y
		}
		if i&4 != 0 {
			z = max.Z
		}
		m.Positions = append(m.Positions, x, y, z)
	}
	m.Indices = []uint32{
		0, 4, 6, 0, 6, 2, // -X
		1, 3, 7, 1, 7, 5, // +X
		0, 1, 5, 0, 5, 4, // -Y
		2, 6, 7, 2, 7, 3, // +Y
		0, 2, 3, 0, 3, 1, // -Z
		4, 5, 7, 4, 7, 6, // +Z
	}
	return m
}

// CenteredBox returns a box of the given size centered on center.
func CenteredBox(center, size geometry.Vector3) Mesh {
	half := size.Mul(0.5)
	return Box(center.Sub(half), center.Add(half))
}

// Cylinder returns a closed, indexed right circular cylinder centered on
// center whose axis points along axis. The side is approximated by segments
// quads; fewer than 3 segments are raised to 3.
func Cylinder(center, axis geometry.Vector3, radius, height float64, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	a := axis.Normalize()
	u := a.Perpendicular()
	v := a.Cross(u)

	bottom := center.Sub(a.Mul(height / 2))
	top := center.Add(a.Mul(height / 2))

	m := Mesh{}
	push := func(p geometry.Vector3) uint32 {
		m.Positions = append(m.Positions, p.X, p.Y, p.Z)
		return uint32(m.VertexCount() - 1)
	}

	// ring vertices: bottom i at 2i, top i at 2i+1
	for i := 0; i < segments; i++ {
		phi := 2 * math.Pi * float64(i) / float64(segments)
		offset := u.Mul(radius * math.Cos(phi)).Add(v.Mul(radius * math.Sin(phi)))
		push(bottom.Add(offset))
		push(top.Add(offset))
	}
	bottomCenter := push(bottom)
	topCenter := push(top)

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := uint32(2*j), uint32(2*j+1)
		m.Indices = append(m.Indices,
			b0, b1, t1,
			b0, t1, t0,
			bottomCenter, b1, b0,
			topCenter, t0, t1,
		)
	}
	return m
}
