// Package wireview renders the vertex graph of a curve as a node-link
// diagram.
//
// # Overview
//
// The wire view treats the curve as a graph: every vertex is a node and
// every segment an edge. [ToDOT] emits Graphviz DOT with each node pinned
// at its canvas position, so the neato engine reproduces the curve's
// shape while drawing it in graph clothing:
//
//	dot, err := wireview.ToDOT(scene, wireview.Options{})
//	svg, err := wireview.RenderSVG(dot)
//
// [RenderPNG] uses the Graphviz raster backend directly, and [RenderPDF]
// converts the SVG output with rsvg-convert.
//
// # Limits
//
// Node-link output stops being legible (and Graphviz stops being quick)
// beyond a few hundred vertices, so [ToDOT] rejects scenes larger than
// [MaxVertices]. For snowflakes this means levels 0 through 4.
package wireview
