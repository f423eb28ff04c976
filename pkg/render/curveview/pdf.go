package curveview

import (
	"github.com/kochwerk/kochwerk/pkg/render"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// RenderPDF renders the scene as PDF by converting its SVG form with
// rsvg-convert. SVG options apply to the intermediate document, so PDF
// output matches the SVG output byte for byte before conversion.
//
// Requires librsvg (apt install librsvg2-bin, brew install librsvg).
func RenderPDF(s scene.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(s, opts...))
}
