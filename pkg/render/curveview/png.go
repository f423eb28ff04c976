package curveview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/kochwerk/kochwerk/pkg/scene"
)

// Raster stroke geometry, in unscaled canvas units.
const (
	pngStrokeWidth  = 2.0
	pngVertexRadius = 2.5
)

// Palette holds the colors used by the PNG rasterizer.
type Palette struct {
	Background color.RGBA
	Fill       color.RGBA
	Stroke     color.RGBA
	Vertex     color.RGBA
	Text       color.RGBA
}

// SimplePalette matches the clean SVG style.
func SimplePalette() Palette {
	return Palette{
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		Fill:       color.RGBA{0xe8, 0xf1, 0xfb, 0xff},
		Stroke:     color.RGBA{0x1d, 0x4e, 0xd8, 0xff},
		Vertex:     color.RGBA{0x1e, 0x3a, 0x8a, 0xff},
		Text:       color.RGBA{0x47, 0x55, 0x69, 0xff},
	}
}

// PencilPalette matches the hand-drawn SVG style. Geometry stays clean;
// only the colors carry over.
func PencilPalette() Palette {
	return Palette{
		Background: color.RGBA{0xfd, 0xfc, 0xf7, 0xff},
		Fill:       color.RGBA{0xf3, 0xed, 0xe2, 0xff},
		Stroke:     color.RGBA{0x2d, 0x2a, 0x26, 0xff},
		Vertex:     color.RGBA{0x55, 0x50, 0x4a, 0xff},
		Text:       color.RGBA{0x2d, 0x2a, 0x26, 0xff},
	}
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	palette  Palette
	vertices bool
	caption  string
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPalette selects the color set (default [SimplePalette]).
func WithPalette(p Palette) PNGOption {
	return func(r *pngRenderer) { r.palette = p }
}

// WithPNGVertices draws a dot on every curve vertex.
func WithPNGVertices() PNGOption {
	return func(r *pngRenderer) { r.vertices = true }
}

// WithPNGCaption places text under the curve.
func WithPNGCaption(text string) PNGOption {
	return func(r *pngRenderer) { r.caption = text }
}

// RenderPNG rasterizes the scene directly to PNG bytes. No external tools
// are involved; the path is filled and stroked with x/image/vector.
func RenderPNG(s scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, palette: SimplePalette()}
	for _, opt := range opts {
		opt(&r)
	}

	if len(s.Path) < 2 {
		return nil, scene.ErrEmptyScene
	}
	w := int(math.Round(s.Width * r.scale))
	h := int(math.Round(s.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, scene.ErrFrameTooSmall
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.palette.Background), image.Point{}, draw.Src)

	pts := make([]rasterPoint, len(s.Path))
	for i, p := range s.Path {
		pts[i] = rasterPoint{float32(p.X * r.scale), float32(p.Y * r.scale)}
	}

	fillPath(img, pts, r.palette.Fill)
	strokePath(img, pts, float32(pngStrokeWidth*r.scale), r.palette.Stroke)
	if r.vertices {
		drawDots(img, pts, float32(pngVertexRadius*r.scale), r.palette.Vertex)
	}
	if r.caption != "" {
		drawCaption(img, r.caption, r.palette.Text)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type rasterPoint struct {
	x, y float32
}

// fillPath fills the closed polygon spanned by pts.
func fillPath(dst *image.RGBA, pts []rasterPoint, col color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		z.LineTo(p.x, p.y)
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// strokePath draws each segment as a filled quad plus a disc at every
// vertex for round joins. All subpaths share one winding direction so the
// nonzero fill rule unions them cleanly.
func strokePath(dst *image.RGBA, pts []rasterPoint, width float32, col color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	hw := width / 2

	for i := 1; i < len(pts); i++ {
		a, q := pts[i-1], pts[i]
		dx, dy := q.x-a.x, q.y-a.y
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*hw, dx/length*hw
		z.MoveTo(a.x+nx, a.y+ny)
		z.LineTo(q.x+nx, q.y+ny)
		z.LineTo(q.x-nx, q.y-ny)
		z.LineTo(a.x-nx, a.y-ny)
		z.ClosePath()
	}
	for _, p := range pts {
		appendDisc(z, p, hw)
	}

	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

func drawDots(dst *image.RGBA, pts []rasterPoint, radius float32, col color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, p := range pts {
		appendDisc(z, p, radius)
	}
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// appendDisc adds a 16-gon approximating a circle, wound clockwise to
// match the segment quads in strokePath.
func appendDisc(z *vector.Rasterizer, c rasterPoint, r float32) {
	const sides = 16
	z.MoveTo(c.x+r, c.y)
	for k := 1; k < sides; k++ {
		theta := -2 * math.Pi * float64(k) / sides
		z.LineTo(c.x+r*float32(math.Cos(theta)), c.y+r*float32(math.Sin(theta)))
	}
	z.ClosePath()
}

// drawCaption writes centered text near the bottom edge with the fixed
// 7x13 bitmap face.
func drawCaption(dst *image.RGBA, text string, col color.Color) {
	face := basicfont.Face7x13
	b := dst.Bounds()
	width := font.MeasureString(face, text).Round()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P((b.Dx()-width)/2, b.Dy()-face.Height),
	}
	d.DrawString(text)
}
