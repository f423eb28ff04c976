package styles

import (
	"bytes"
	"fmt"
)

// Simple palette and stroke constants.
const (
	simpleBackground = "#ffffff"
	simpleFill       = "#e8f1fb"
	simpleStroke     = "#1d4ed8"
	simpleVertex     = "#1e3a8a"
	simpleText       = "#475569"

	simpleStrokeWidth  = 2.0
	simpleVertexRadius = 2.5
	simpleFontSize     = 15.0
)

// Simple is the clean default style: flat fill, solid stroke, sans-serif
// caption. The zero value is ready to use.
type Simple struct{}

// RenderDefs writes nothing; the simple style needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, simpleBackground)
}

func (Simple) RenderCurve(buf *bytes.Buffer, c Curve) {
	if len(c.Points) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
		linearPath(c), simpleFill, simpleStroke, simpleStrokeWidth)
}

func (Simple) RenderVertices(buf *bytes.Buffer, c Curve) {
	for _, p := range dedupedVertices(c) {
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n",
			p.X, p.Y, simpleVertexRadius, simpleVertex)
	}
}

func (Simple) RenderCaption(buf *bytes.Buffer, cap Caption) {
	if cap.Text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="%s" text-anchor="middle">%s</text>`+"\n",
		cap.X, cap.Y, simpleFontSize, simpleText, EscapeXML(cap.Text))
}

// linearPath builds the d attribute for a straight-segment path.
func linearPath(c Curve) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.2f %.2f", c.Points[0].X, c.Points[0].Y)
	last := len(c.Points)
	if c.Closed {
		// The closing segment is drawn by Z, not by a repeated point.
		last--
	}
	for _, p := range c.Points[1:last] {
		fmt.Fprintf(&b, " L %.2f %.2f", p.X, p.Y)
	}
	if c.Closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// dedupedVertices drops the repeated closing point so closed curves do not
// draw the first marker twice.
func dedupedVertices(c Curve) []Point {
	pts := c.Points
	if c.Closed && len(pts) > 1 {
		pts = pts[:len(pts)-1]
	}
	return pts
}
