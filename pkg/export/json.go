package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/section"
)

// SectionData is the JSON form of a section result
type SectionData struct {
	Curve   string        `json:"curve"`
	Closed  bool          `json:"closed"`
	Loops   []LoopData    `json:"loops"`
	Circle  *CircleData   `json:"circle,omitempty"`
	Ellipse *EllipseData  `json:"ellipse,omitempty"`
	Stats   section.Stats `json:"stats"`
}

// LoopData represents one loop
type LoopData struct {
	Closed bool          `json:"closed"`
	Points []Vector3Data `json:"points"`
}

// CircleData carries the analytic circle parameters
type CircleData struct {
	Center Vector3Data `json:"center"`
	Normal Vector3Data `json:"normal"`
	Radius float64     `json:"radius"`
}

// EllipseData carries the analytic ellipse parameters
type EllipseData struct {
	Center      Vector3Data `json:"center"`
	MajorAxis   Vector3Data `json:"majorAxis"`
	MinorAxis   Vector3Data `json:"minorAxis"`
	MajorRadius float64     `json:"majorRadius"`
	MinorRadius float64     `json:"minorRadius"`
}

// Vector3Data represents a 3D vector for JSON serialization
type Vector3Data struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func vec(v geometry.Vector3) Vector3Data {
	return Vector3Data{X: v.X, Y: v.Y, Z: v.Z}
}

// NewSectionData converts a result to its JSON form
func NewSectionData(result section.Result) SectionData {
	data := SectionData{
		Curve:  result.Kind().String(),
		Closed: result.Closed(),
		Loops:  make([]LoopData, 0, len(result.Loops)),
		Stats:  result.Stats,
	}
	for _, l := range result.Loops {
		loop := LoopData{Closed: l.Closed, Points: make([]Vector3Data, len(l.Points))}
		for i, p := range l.Points {
			loop.Points[i] = vec(p)
		}
		data.Loops = append(data.Loops, loop)
	}

	switch c := result.Curve.(type) {
	case section.Circle:
		data.Circle = &CircleData{Center: vec(c.Center), Normal: vec(c.Normal), Radius: c.Radius}
	case section.Ellipse:
		data.Ellipse = &EllipseData{
			Center:      vec(c.Center),
			MajorAxis:   vec(c.MajorAxis),
			MinorAxis:   vec(c.MinorAxis),
			MajorRadius: c.MajorRadius,
			MinorRadius: c.MinorRadius,
		}
	}
	return data
}

// WriteJSON writes result as indented JSON to w
func WriteJSON(w io.Writer, result section.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSectionData(result)); err != nil {
		return fmt.Errorf("failed to encode section: %w", err)
	}
	return nil
}
