package curve

import (
	"fmt"
	"math"
)

// Point is a position in the curve plane.
//
// Points map onto complex numbers with X as the real part and Y as the
// imaginary part. The zero value is the origin and fully usable.
type Point struct {
	X float64
	Y float64
}

// FromComplex converts a complex number to a Point (real→X, imag→Y).
func FromComplex(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

// Complex returns the point as a complex number (X+iY).
func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}

// Add returns the vector sum p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the point scaled by s in both coordinates.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp returns the linear interpolation between p and q at parameter t.
// t=0 yields p and t=1 yields q; values outside [0, 1] extrapolate along
// the same line.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// String formats the point as "(x, y)" with compact precision.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
