// Package projection maps section loops onto the four orthographic
// drafting views.
package projection

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gosection/pkg/geometry"
)

// View is one of the fixed orthographic projection planes
type View int

const (
	Front View = iota
	Top
	SideA
	SideB
)

// Views lists all views in drawing order
var Views = []View{Front, Top, SideA, SideB}

// frame places every view around the solid. The normal points from the
// solid toward the viewer; screen right is up × normal.
var frame = map[View]struct {
	normal, up geometry.Vector3
}{
	Front: {normal: geometry.NewVector3(0, 0, 1), up: geometry.NewVector3(0, 1, 0)},
	Top:   {normal: geometry.NewVector3(0, 1, 0), up: geometry.NewVector3(0, 0, -1)},
	SideA: {normal: geometry.NewVector3(1, 0, 0), up: geometry.NewVector3(0, 1, 0)},
	SideB: {normal: geometry.NewVector3(-1, 0, 0), up: geometry.NewVector3(0, 1, 0)},
}

// String returns the config name of the view
func (v View) String() string {
	switch v {
	case Front:
		return "front"
	case Top:
		return "top"
	case SideA:
		return "side-a"
	case SideB:
		return "side-b"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Normal returns the direction the view looks from
func (v View) Normal() geometry.Vector3 {
	return frame[v].normal
}

// Up returns the 3D direction drawn upward on screen
func (v View) Up() geometry.Vector3 {
	return frame[v].up
}

// Right returns the 3D direction drawn to the right on screen
func (v View) Right() geometry.Vector3 {
	f := frame[v]
	return f.up.Cross(f.normal)
}

// ParseView parses a view name. "right" and "left" are accepted for the
// two side views.
func ParseView(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "front":
		return Front, nil
	case "top":
		return Top, nil
	case "side-a", "sidea", "right":
		return SideA, nil
	case "side-b", "sideb", "left":
		return SideB, nil
	default:
		return Front, fmt.Errorf("unknown view %q", name)
	}
}

// ParseViews parses a list of view names, dropping repeats
func ParseViews(names []string) ([]View, error) {
	var views []View
	seen := make(map[View]bool)
	for _, name := range names {
		v, err := ParseView(name)
		if err != nil {
			return nil, err
		}
		if !seen[v] {
			seen[v] = true
			views = append(views, v)
		}
	}
	return views, nil
}
