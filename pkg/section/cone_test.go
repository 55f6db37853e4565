package section

import (
	"math"
	"testing"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestClassifyCone(t *testing.T) {
	halfAngle := 30 * math.Pi / 180
	axis := v(0, 0, 1)

	// tilted returns a plane whose normal leans deg degrees off the axis
	tilted := func(deg float64) geometry.Plane {
		r := deg * math.Pi / 180
		return geometry.NewPlane(v(0, 0, 1), v(math.Sin(r), 0, math.Cos(r)))
	}

	tests := []struct {
		name  string
		plane geometry.Plane
		want  CurveKind
	}{
		{"perpendicular", tilted(0), KindCircle},
		{"flipped normal", geometry.NewPlane(v(0, 0, 0), v(0, 0, -1)), KindCircle},
		{"slight tilt", tilted(20), KindEllipse},
		{"parallel to side", tilted(60), KindParabola},
		{"steep", tilted(80), KindHyperbola},
		{"through axis", tilted(90), KindHyperbola},
		{"zero normal", geometry.NewPlane(v(0, 0, 0), v(0, 0, 0)), KindPolygon},
		{"unnormalized perpendicular", geometry.Plane{Normal: v(0, 0, 4)}, KindCircle},
		{"unnormalized tilt", geometry.Plane{Normal: v(0.5, 0, 5)}, KindEllipse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCone(halfAngle, axis, tt.plane))
		})
	}

	assert.Equal(t, KindPolygon, ClassifyCone(halfAngle, v(0, 0, 0), tilted(0)))
}
