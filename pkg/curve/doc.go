// Package curve provides polyline geometry for piecewise-linear curves.
//
// # Overview
//
// Kochwerk represents every curve - the snowflake boundary itself and any
// deformed variant of it - as a polyline: an ordered vertex sequence
// interpreted as straight segments between consecutive points. This package
// provides the [Point] and [Polyline] types together with the evaluation,
// sampling, and measurement primitives the rest of the pipeline builds on.
//
// # Basic Usage
//
// Construct a polyline with [New] or [NewClosed], then evaluate points along
// it with [Polyline.Eval] using a normalized parameter in [0, 1]:
//
//	p, _ := curve.NewClosed([]curve.Point{{0, 0}, {1, 0}, {0.5, 1}, {0, 0}})
//	mid, _ := p.Eval(0.5)
//
// The parameter is uniform in vertex index, not in arc length: t sweeps the
// virtual index (M-1)·t across the M vertices, so evaluation lands exactly on
// vertex k at t = k/(M-1). For the Koch snowflake all segments at a given
// subdivision level share the same length, which makes the two
// parameterizations coincide.
//
// # Complex Plane
//
// Vertices double as complex numbers (X as real part, Y as imaginary part),
// the representation the analytic deformation maps in [xform] operate on.
// [Point.Complex], [FromComplex], and [Polyline.Complexes] convert between
// the two views.
//
// # Concurrency
//
// Polyline values are immutable after construction and safe for concurrent
// readers. Construction copies the input slice, so callers may reuse their
// buffers freely.
//
// [xform]: github.com/kochwerk/kochwerk/pkg/xform
package curve
