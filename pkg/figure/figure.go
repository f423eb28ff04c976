package figure

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kochwerk/kochwerk/pkg/curve"
	"github.com/kochwerk/kochwerk/pkg/koch"
)

// Recognized metadata keys. Arbitrary keys are preserved on round-trips;
// these are the ones the render pipeline reads.
const (
	MetaStyle = "style" // Visual style name
	MetaSeed  = "seed"  // Jitter seed for the handdrawn style
	MetaTitle = "title" // Caption rendered below the curve
)

var (
	// ErrNegativeLevel is returned by [Figure.Validate] when the stored
	// level is negative.
	ErrNegativeLevel = errors.New("figure level must not be negative")

	// ErrCountMismatch is returned by [Figure.Validate] when the point
	// count differs from 3·4^level+1. Deformation never changes the count,
	// so a mismatch means the figure was corrupted or hand-edited.
	ErrCountMismatch = errors.New("point count does not match level")
)

// Figure is the canonical serialization format for snowflake curves.
// It captures both the vertex data and the parameters that produced it,
// enabling full round-trip fidelity across files, caches, and the archive.
type Figure struct {
	Level  int            `json:"level" bson:"level"`                   // Subdivision level
	Map    string         `json:"map,omitempty" bson:"map,omitempty"`   // Deformation name (empty means identity)
	Points []Point        `json:"points" bson:"points"`                 // Closed vertex sequence
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"` // Render preferences and freeform data
}

// Point is a serialized curve vertex.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// FromPolyline builds a Figure from a generated boundary and the parameters
// that produced it. An empty mapName records an undeformed curve.
func FromPolyline(level int, mapName string, p curve.Polyline) Figure {
	pts := make([]Point, p.Len())
	for i := range pts {
		v := p.At(i)
		pts[i] = Point{X: v.X, Y: v.Y}
	}
	return Figure{Level: level, Map: mapName, Points: pts}
}

// Polyline rebuilds the curve from the serialized points. Figures always
// hold closed boundaries, so reconstruction goes through [curve.NewClosed]
// and re-checks the loop invariants on the way.
func (f Figure) Polyline() (curve.Polyline, error) {
	pts := make([]curve.Point, len(f.Points))
	for i, p := range f.Points {
		pts[i] = curve.Point{X: p.X, Y: p.Y}
	}
	return curve.NewClosed(pts)
}

// Validate checks structural integrity: a non-negative level, the point
// count the level implies, and a well-formed closed loop. It does not check
// that Map names a registered deformation; that is the pipeline's concern.
func (f Figure) Validate() error {
	if f.Level < 0 {
		return ErrNegativeLevel
	}
	if want := koch.VertexCount(f.Level); len(f.Points) != want {
		return fmt.Errorf("%w: level %d implies %d points, figure has %d",
			ErrCountMismatch, f.Level, want, len(f.Points))
	}
	if _, err := f.Polyline(); err != nil {
		return err
	}
	return nil
}

// Marshal serializes the figure as indented JSON.
func Marshal(f Figure) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Figure and validates it.
func Unmarshal(data []byte) (Figure, error) {
	var f Figure
	if err := json.Unmarshal(data, &f); err != nil {
		return Figure{}, fmt.Errorf("decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Figure{}, err
	}
	return f, nil
}
