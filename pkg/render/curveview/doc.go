// Package curveview renders fitted scenes as curve drawings.
//
// # Overview
//
// The curve view draws the scene's path as a single closed shape. Three
// output formats are supported:
//
//   - [RenderSVG]: native vector output, styled through [styles.Style]
//   - [RenderPNG]: native raster output via golang.org/x/image/vector
//   - [RenderPDF]: SVG piped through rsvg-convert
//
// Basic usage:
//
//	svg := curveview.RenderSVG(scene,
//	    curveview.WithStyle(handdrawn.New(seed)),
//	    curveview.WithVertices(),
//	)
//
// # Options
//
//   - [WithStyle]: visual style ([styles.Simple] or [handdrawn.New])
//   - [WithVertices]: draw per-vertex markers (legible at low levels only)
//   - [WithCaption]: place a caption under the curve
//
// # PNG Rendering
//
// [RenderPNG] rasterizes the clean geometry directly, without librsvg.
// Colors follow the selected style family through [Palette], but stroke
// effects such as the hand-drawn wobble are a vector-output feature.
package curveview
