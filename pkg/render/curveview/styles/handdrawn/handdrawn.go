package handdrawn

import (
	"bytes"
	"fmt"
	"math"

	"github.com/kochwerk/kochwerk/pkg/fonts"
	"github.com/kochwerk/kochwerk/pkg/render/curveview/styles"
)

// Pencil palette and stroke constants.
const (
	paperColor  = "#fdfcf7"
	inkColor    = "#2d2a26"
	fillColor   = "#f3ede2"
	vertexColor = "#55504a"

	strokeWidth  = 2.2
	vertexRadius = 2.2
	fontSize     = 17.0

	// Wobble amplitude as a fraction of segment length, with absolute
	// bounds so short segments still wiggle and long ones stay plausible.
	wobbleRatio = 0.12
	wobbleMin   = 0.5
	wobbleMax   = 3.0
)

// fontFamily is the handwriting stack shared by every sketch-style text.
const fontFamily = fonts.FallbackFontFamily

// Handdrawn renders curves as if sketched in pencil. Construct with [New];
// equal seeds produce identical output.
type Handdrawn struct {
	seed uint64
}

// New returns a hand-drawn style with the given jitter seed.
func New(seed uint64) Handdrawn {
	return Handdrawn{seed: seed}
}

// RenderDefs writes nothing; the sketch look needs no defs.
func (Handdrawn) RenderDefs(buf *bytes.Buffer) {}

func (Handdrawn) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, paperColor)
}

func (h Handdrawn) RenderCurve(buf *bytes.Buffer, c styles.Curve) {
	if len(c.Points) < 2 {
		return
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" stroke="%s" stroke-width="%.1f" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		h.wobbledPath(c), fillColor, inkColor, strokeWidth)
}

func (h Handdrawn) RenderVertices(buf *bytes.Buffer, c styles.Curve) {
	pts := c.Points
	if c.Closed && len(pts) > 1 {
		pts = pts[:len(pts)-1]
	}
	for i, p := range pts {
		r := vertexRadius * (0.8 + 0.4*unit(h.seed, uint64(i), 3))
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			p.X, p.Y, r, vertexColor)
	}
}

func (Handdrawn) RenderCaption(buf *bytes.Buffer, cap styles.Caption) {
	if cap.Text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s" text-anchor="middle">%s</text>`+"\n",
		cap.X, cap.Y, fontFamily, fontSize, inkColor, styles.EscapeXML(cap.Text))
}

// wobbledPath replaces each straight segment with a quadratic bezier bowed
// off the midline by a seeded amount. The path is deterministic in the seed
// and the point sequence.
func (h Handdrawn) wobbledPath(c styles.Curve) string {
	pts := c.Points
	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.2f %.2f", pts[0].X, pts[0].Y)
	for i := 1; i < len(pts); i++ {
		a, z := pts[i-1], pts[i]
		cx, cy := controlPoint(a, z, h.seed, uint64(i))
		fmt.Fprintf(&b, " Q %.2f %.2f %.2f %.2f", cx, cy, z.X, z.Y)
	}
	if c.Closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// controlPoint bows the segment midpoint along its normal. The offset
// magnitude tracks segment length inside [wobbleMin, wobbleMax].
func controlPoint(a, z styles.Point, seed, i uint64) (float64, float64) {
	dx, dy := z.X-a.X, z.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return a.X, a.Y
	}

	amp := length * wobbleRatio
	amp = math.Max(wobbleMin, math.Min(wobbleMax, amp))
	offset := (2*unit(seed, i, 1) - 1) * amp

	mx, my := (a.X+z.X)/2, (a.Y+z.Y)/2
	return mx - dy/length*offset, my + dx/length*offset
}

// unit maps (seed, index, salt) to a deterministic value in [0, 1) using a
// splitmix64 round per input.
func unit(seed, i, salt uint64) float64 {
	h := mix(mix(mix(seed) ^ i) ^ salt)
	return float64(h>>11) / (1 << 53)
}

// mix is one splitmix64 output round.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
