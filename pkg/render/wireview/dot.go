package wireview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/kochwerk/kochwerk/pkg/render"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// MaxVertices is the largest vertex count ToDOT accepts. Beyond this the
// diagram is an unreadable smear and Graphviz layout time balloons.
const MaxVertices = 1024

var (
	// ErrTooManyVertices is returned by [ToDOT] when the scene exceeds
	// [MaxVertices].
	ErrTooManyVertices = errors.New("too many vertices for a node-link diagram")

	// ErrEmptyScene is returned by [ToDOT] when there is nothing to draw.
	ErrEmptyScene = errors.New("scene has no path")
)

// Options configures node-link diagram generation.
type Options struct {
	// Labels shows the vertex index inside each node.
	// When false, vertices are drawn as plain points.
	Labels bool
}

// ToDOT converts a fitted scene to Graphviz DOT. Every vertex is pinned at
// its canvas position, so neato preserves the curve's geometry. The
// resulting string renders with [RenderSVG], [RenderPNG], or [RenderPDF].
func ToDOT(s scene.Scene, opts Options) (string, error) {
	if len(s.Path) == 0 {
		return "", ErrEmptyScene
	}

	pts := s.Path
	closed := s.IsClosed()
	if closed {
		// The repeated closing vertex becomes an edge back to node 0.
		pts = pts[:len(pts)-1]
	}
	if len(pts) > MaxVertices {
		return "", fmt.Errorf("%w: %d > %d", ErrTooManyVertices, len(pts), MaxVertices)
	}

	var buf bytes.Buffer
	buf.WriteString("graph curve {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, fontsize=10, width=0.3, fixedsize=true, style=filled, fillcolor=\"#e8f1fb\", color=\"#1d4ed8\"];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.06, color=\"#1d4ed8\"];\n")
	}
	buf.WriteString("  edge [color=\"#93b4e8\", penwidth=1.2];\n")
	buf.WriteString("\n")

	for i, p := range pts {
		// Graphviz Y grows upward; canvas Y grows downward.
		fmt.Fprintf(&buf, "  %d [pos=\"%.2f,%.2f!\"%s];\n", i, p.X, s.Height-p.Y, labelAttr(opts, i))
	}

	buf.WriteString("\n")
	for i := 1; i < len(pts); i++ {
		fmt.Fprintf(&buf, "  %d -- %d;\n", i-1, i)
	}
	if closed && len(pts) > 1 {
		fmt.Fprintf(&buf, "  %d -- 0;\n", len(pts)-1)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func labelAttr(opts Options, i int) string {
	if opts.Labels {
		return fmt.Sprintf(", label=%q", strconv.Itoa(i))
	}
	return ", label=\"\""
}

// renderNeato lays out dot with the neato engine, which honors the
// pinned vertex positions, and encodes the result in format.
func renderNeato(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG with a normalized zero-origin
// viewBox ready for embedding or conversion with [render.ToPDF].
func RenderSVG(dot string) ([]byte, error) {
	svg, err := renderNeato(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph as PNG through the built-in Graphviz
// raster backend; no external tools are involved.
func RenderPNG(dot string) ([]byte, error) {
	return renderNeato(dot, graphviz.PNG)
}

// RenderPDF renders a DOT graph as PDF by converting its SVG form with
// rsvg-convert. Requires librsvg (apt install librsvg2-bin, brew
// install librsvg).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// Graphviz emits a viewBox with a shifted origin and pt-unit sizing;
// embed targets behave better with a zero origin and explicit pixel
// dimensions.
var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	opening := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(opening))
}
