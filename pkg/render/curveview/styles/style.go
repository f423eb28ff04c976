package styles

import (
	"bytes"
	"encoding/xml"
)

// Style defines the visual appearance for curve rendering.
// Implementations control how the background, the path, the vertex markers,
// and the caption are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, font faces).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes the backdrop for a frame of the given size.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderCurve writes the SVG for the curve path itself.
	RenderCurve(buf *bytes.Buffer, c Curve)
	// RenderVertices writes the SVG for per-vertex markers.
	RenderVertices(buf *bytes.Buffer, c Curve)
	// RenderCaption writes the SVG for the caption text.
	RenderCaption(buf *bytes.Buffer, cap Caption)
}

// Curve contains all data needed to draw one curve path.
// Closed curves carry the duplicate closing point, matching the scene path
// format; renderers substitute the SVG Z command for the final segment.
type Curve struct {
	Points []Point // Canvas-space vertices, in drawing order
	Closed bool    // Whether the last point repeats the first
}

// Point is a canvas-space coordinate.
type Point struct {
	X, Y float64
}

// Caption holds the text placed under the curve.
type Caption struct {
	Text  string  // Display text
	X, Y  float64 // Anchor position (text is centered on X)
	Width float64 // Frame width, for sizing decisions
}

// EscapeXML escapes text for safe embedding in SVG attributes and content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
