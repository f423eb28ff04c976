package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kochwerk/kochwerk/pkg/curve"
)

// TestComplexRoundTrip verifies that Point↔complex conversion preserves
// coordinates exactly.
func TestComplexRoundTrip(t *testing.T) {
	p := curve.Point{X: -0.5, Y: 1 / math.Sqrt(3)}
	z := p.Complex()
	require.Equal(t, p.X, real(z))
	require.Equal(t, p.Y, imag(z))
	require.Equal(t, p, curve.FromComplex(z))
}

// TestVectorArithmetic checks Add, Sub, and Scale against hand-computed
// values.
func TestVectorArithmetic(t *testing.T) {
	a := curve.Point{X: 1, Y: 2}
	b := curve.Point{X: -3, Y: 0.5}

	require.Equal(t, curve.Point{X: -2, Y: 2.5}, a.Add(b))
	require.Equal(t, curve.Point{X: 4, Y: 1.5}, a.Sub(b))
	require.Equal(t, curve.Point{X: 2, Y: 4}, a.Scale(2))
}

// TestLerp verifies endpoint behavior and midpoint interpolation.
func TestLerp(t *testing.T) {
	a := curve.Point{X: 0, Y: 0}
	b := curve.Point{X: 2, Y: -4}

	require.Equal(t, a, a.Lerp(b, 0))
	require.Equal(t, b, a.Lerp(b, 1))
	require.Equal(t, curve.Point{X: 1, Y: -2}, a.Lerp(b, 0.5))
}

// TestDistance checks a 3-4-5 triangle and the zero distance of identical
// points.
func TestDistance(t *testing.T) {
	a := curve.Point{X: 0, Y: 0}
	b := curve.Point{X: 3, Y: 4}

	require.InDelta(t, 5.0, a.Distance(b), 1e-15)
	require.Zero(t, a.Distance(a))
}
