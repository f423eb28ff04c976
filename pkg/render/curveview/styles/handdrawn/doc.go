// Package handdrawn provides a pencil-sketch visual style for curve
// rendering.
//
// # Overview
//
// The style replaces each straight segment with a quadratic bezier whose
// control point is nudged off the midline, giving the wobble of a line
// drawn freehand. The nudge amounts come from a seeded hash of the segment
// index, so the same seed always reproduces the same sketch:
//
//	svg := curveview.RenderSVG(scene, curveview.WithStyle(handdrawn.New(42)))
//
// Vertex markers get per-vertex radius jitter from the same generator, and
// the caption uses a handwriting font stack.
package handdrawn
