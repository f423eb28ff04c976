package curve

import (
	"errors"
	"math"
)

var (
	// ErrTooFewPoints is returned by [New] and [NewClosed] when too few
	// points are supplied. An open polyline needs at least two points (one
	// segment); a closed one needs at least four (a triangle plus the
	// repeated start).
	ErrTooFewPoints = errors.New("polyline has too few points")

	// ErrNotClosed is returned by [NewClosed] when the first and last points
	// differ. Closed curves must repeat their starting vertex at the end.
	ErrNotClosed = errors.New("closed polyline must end at its starting point")

	// ErrRepeatedPoint is returned by [New] and [NewClosed] when two
	// consecutive vertices coincide, which would create a zero-length
	// segment and break arc-length measurements.
	ErrRepeatedPoint = errors.New("consecutive polyline points must be distinct")

	// ErrParamOutOfRange is returned by [Polyline.Eval] when the curve
	// parameter lies outside [0, 1] or is NaN.
	ErrParamOutOfRange = errors.New("curve parameter must be in [0, 1]")

	// ErrTooFewSamples is returned by [Polyline.Sample] when fewer than two
	// samples are requested. Both endpoints are always included, so two is
	// the minimum meaningful count.
	ErrTooFewSamples = errors.New("sampling needs at least two points")
)

// Polyline is an immutable ordered vertex sequence interpreted as straight
// segments between consecutive points.
//
// The zero value is an empty polyline with no segments; use [New] or
// [NewClosed] to construct usable instances. Methods never mutate the vertex
// slice, so a Polyline is safe for concurrent readers.
type Polyline struct {
	pts []Point
}

// New creates a polyline from the given points. The input slice is copied,
// so callers may reuse it afterwards.
//
// Returns ErrTooFewPoints for fewer than two points and ErrRepeatedPoint
// when two consecutive points coincide.
func New(pts []Point) (Polyline, error) {
	if err := validatePoints(pts); err != nil {
		return Polyline{}, err
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return Polyline{pts: cp}, nil
}

func validatePoints(pts []Point) error {
	if len(pts) < 2 {
		return ErrTooFewPoints
	}
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			return ErrRepeatedPoint
		}
	}
	return nil
}

// NewClosed creates a polyline that must form a closed loop: the last point
// has to repeat the first exactly. Returns ErrNotClosed otherwise, in
// addition to the validations performed by [New].
func NewClosed(pts []Point) (Polyline, error) {
	if len(pts) < 4 {
		return Polyline{}, ErrTooFewPoints
	}
	if pts[0] != pts[len(pts)-1] {
		return Polyline{}, ErrNotClosed
	}
	return New(pts)
}

// FromComplexes creates a polyline from complex vertices (real→X, imag→Y).
// Validation matches [New].
func FromComplexes(zs []complex128) (Polyline, error) {
	pts := make([]Point, len(zs))
	for i, z := range zs {
		pts[i] = FromComplex(z)
	}
	return New(pts)
}

// Len returns the number of vertices.
func (p Polyline) Len() int { return len(p.pts) }

// Segments returns the number of straight segments, one less than the
// vertex count.
func (p Polyline) Segments() int {
	if len(p.pts) == 0 {
		return 0
	}
	return len(p.pts) - 1
}

// At returns the vertex at index i. It panics if i is out of range, matching
// slice semantics.
func (p Polyline) At(i int) Point { return p.pts[i] }

// Points returns a copy of the vertex sequence.
func (p Polyline) Points() []Point {
	cp := make([]Point, len(p.pts))
	copy(cp, p.pts)
	return cp
}

// Complexes returns the vertex sequence as complex numbers (X+iY).
func (p Polyline) Complexes() []complex128 {
	out := make([]complex128, len(p.pts))
	for i, pt := range p.pts {
		out[i] = pt.Complex()
	}
	return out
}

// IsClosed reports whether the polyline forms a closed loop, i.e. the last
// vertex repeats the first.
func (p Polyline) IsClosed() bool {
	return len(p.pts) >= 2 && p.pts[0] == p.pts[len(p.pts)-1]
}

// Validate re-checks the invariants every constructor enforces: at least
// two vertices and no zero-length segments. Constructed values always
// pass; the zero value fails with ErrTooFewPoints. Closure is a property
// of the data rather than the type, so check it with [IsClosed].
func (p Polyline) Validate() error {
	return validatePoints(p.pts)
}

// Eval returns the point at normalized parameter t along the polyline.
//
// The parameter is uniform in vertex index: the virtual position
// pos = (Len-1)·t selects segment floor(pos) and interpolates linearly
// within it. Eval(0) is the first vertex and Eval(1) the last; at t = 1 the
// segment index clamps to the final segment so the endpoint is hit exactly.
//
// Parameters outside [0, 1] are rejected with ErrParamOutOfRange rather than
// clamped, so a caller stepping an animation past the end cannot silently
// pin the result to the curve endpoints.
func (p Polyline) Eval(t float64) (Point, error) {
	if len(p.pts) < 2 {
		return Point{}, ErrTooFewPoints
	}
	if math.IsNaN(t) || t < 0 || t > 1 {
		return Point{}, ErrParamOutOfRange
	}
	pos := float64(len(p.pts)-1) * t
	i := int(pos)
	if i > len(p.pts)-2 {
		i = len(p.pts) - 2
	}
	return p.pts[i].Lerp(p.pts[i+1], pos-float64(i)), nil
}

// Sample returns n points evenly spaced in parameter (not arc length),
// always including both endpoints. Returns ErrTooFewSamples for n < 2.
func (p Polyline) Sample(n int) ([]Point, error) {
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	out := make([]Point, n)
	for i := range out {
		pt, err := p.Eval(float64(i) / float64(n-1))
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}

// Arclen returns the total length of the polyline, the sum of all segment
// lengths. An empty or single-point polyline has length zero.
func (p Polyline) Arclen() float64 {
	var sum float64
	for i := 1; i < len(p.pts); i++ {
		sum += p.pts[i-1].Distance(p.pts[i])
	}
	return sum
}

// BoundingBox returns the axis-aligned extent of the polyline as its
// minimum and maximum corners. For an empty polyline both corners are the
// origin.
func (p Polyline) BoundingBox() (min, max Point) {
	if len(p.pts) == 0 {
		return Point{}, Point{}
	}
	min, max = p.pts[0], p.pts[0]
	for _, pt := range p.pts[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max
}
