package curveview

import (
	"bytes"
	"fmt"

	"github.com/kochwerk/kochwerk/pkg/render/curveview/styles"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// captionOffset is the gap between the frame bottom and the caption
// baseline, as a fraction of frame height.
const captionOffset = 0.035

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    styles.Style
	vertices bool
	caption  string
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithVertices draws a marker on every curve vertex. Markers blur together
// above a few hundred vertices; callers gate this on level.
func WithVertices() SVGOption { return func(r *svgRenderer) { r.vertices = true } }

// WithCaption places text under the curve.
func WithCaption(text string) SVGOption { return func(r *svgRenderer) { r.caption = text } }

// RenderSVG renders the scene as an SVG document.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	c := buildCurve(s)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, s.Width, s.Height)
	r.style.RenderCurve(&buf, c)
	if r.vertices {
		r.style.RenderVertices(&buf, c)
	}
	if r.caption != "" {
		r.style.RenderCaption(&buf, styles.Caption{
			Text:  r.caption,
			X:     s.Width / 2,
			Y:     s.Height * (1 - captionOffset),
			Width: s.Width,
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildCurve(s scene.Scene) styles.Curve {
	pts := make([]styles.Point, len(s.Path))
	for i, p := range s.Path {
		pts[i] = styles.Point{X: p.X, Y: p.Y}
	}
	return styles.Curve{Points: pts, Closed: s.IsClosed()}
}
