// Package render turns fitted scenes into output documents.
//
// # Overview
//
// Two visualization families live under this package:
//
//   - Curve view (in [curveview] subpackage): the curve itself, drawn as a
//     closed filled path.
//   - Wire view (in [wireview] subpackage): the vertex graph of the curve,
//     a node-link diagram rendered through Graphviz with pinned positions.
//
// The root package holds the SVG-to-PDF conversion shared by both families.
//
// # Format Conversion
//
// [ToPDF] converts any SVG document to PDF using the external rsvg-convert
// tool (from librsvg):
//
//	svg := curveview.RenderSVG(scene, opts...)
//	pdf, err := render.ToPDF(svg)
//
// PNG output does not go through librsvg: curveview rasterizes natively and
// wireview uses the Graphviz PNG backend.
//
// # Curve View
//
// The [curveview] subpackage draws the fitted path with a pluggable visual
// style:
//   - [curveview/styles]: the style interface and the clean default
//   - [curveview/styles/handdrawn]: a pencil-sketch style with seeded jitter
//
// # Wire View
//
// The [wireview] subpackage emits DOT with every vertex pinned at its
// canvas position, so the diagram reproduces the curve's shape exactly:
//
//	dot, err := wireview.ToDOT(scene, wireview.Options{})
//	svg, err := wireview.RenderSVG(dot)
//
// [curveview]: github.com/kochwerk/kochwerk/pkg/render/curveview
// [curveview/styles]: github.com/kochwerk/kochwerk/pkg/render/curveview/styles
// [curveview/styles/handdrawn]: github.com/kochwerk/kochwerk/pkg/render/curveview/styles/handdrawn
// [wireview]: github.com/kochwerk/kochwerk/pkg/render/wireview
package render
