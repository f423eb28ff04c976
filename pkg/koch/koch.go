package koch

import (
	"errors"
	"math"

	"github.com/kochwerk/kochwerk/pkg/curve"
)

var (
	// ErrNegativeLevel is returned by [Snowflake] when the subdivision level
	// is negative. Level 0 is the base triangle; there is nothing before it.
	ErrNegativeLevel = errors.New("subdivision level must not be negative")

	// ErrLevelTooDeep is returned by [Snowflake] when the subdivision level
	// exceeds [MaxLevel]. Vertex counts quadruple per level, so the cap
	// keeps a mistyped level from exhausting memory.
	ErrLevelTooDeep = errors.New("subdivision level exceeds maximum")
)

// MaxLevel is the deepest subdivision level [Snowflake] accepts. Level 12
// yields 3·4^12+1 ≈ 5.0e7 vertices, far beyond what any raster or vector
// output can resolve.
const MaxLevel = 12

// Base returns the level-0 snowflake: a closed equilateral triangle with
// unit side length, centered on the origin with its apex on the positive
// imaginary axis. The traversal order (apex, bottom-left, bottom-right,
// apex) is what makes every refinement bump point outward.
func Base() curve.Polyline {
	p, err := curve.FromComplexes(base())
	if err != nil {
		panic(err) // unreachable: the base triangle is a fixed valid shape
	}
	return p
}

// Snowflake returns the closed snowflake boundary at the given subdivision
// level. Level 0 is the base triangle; each additional level applies one
// refinement step to every segment.
//
// Returns ErrNegativeLevel for level < 0 and ErrLevelTooDeep for levels
// beyond [MaxLevel].
func Snowflake(level int) (curve.Polyline, error) {
	if level < 0 {
		return curve.Polyline{}, ErrNegativeLevel
	}
	if level > MaxLevel {
		return curve.Polyline{}, ErrLevelTooDeep
	}
	zs := base()
	for i := 0; i < level; i++ {
		zs = subdivide(zs)
	}
	return curve.FromComplexes(zs)
}

// Subdivide applies one refinement step to a polyline, replacing each
// segment with the four-segment Koch motif. Existing vertices are preserved
// and reappear at every fourth index of the result; closure is preserved as
// well.
func Subdivide(p curve.Polyline) (curve.Polyline, error) {
	if p.Len() < 2 {
		return curve.Polyline{}, curve.ErrTooFewPoints
	}
	return curve.FromComplexes(subdivide(p.Complexes()))
}

// VertexCount returns the number of vertices in the closed snowflake
// boundary at the given level: 3·4^level + 1. Negative levels yield 0.
func VertexCount(level int) int {
	if level < 0 {
		return 0
	}
	return 3*(1<<(2*uint(level))) + 1
}

// EdgeCount returns the number of boundary segments at the given level:
// 3·4^level. Negative levels yield 0.
func EdgeCount(level int) int {
	if level < 0 {
		return 0
	}
	return 3 * (1 << (2 * uint(level)))
}

// base returns the closed base triangle as complex vertices.
func base() []complex128 {
	h := 1 / (2 * math.Sqrt(3)) // apothem of the unit-side triangle
	return []complex128{
		complex(0, 2*h),
		complex(-0.5, -h),
		complex(0.5, -h),
		complex(0, 2*h),
	}
}

// subdivide emits the refined vertex sequence for one Koch step. Each input
// segment z1→z2 contributes z1, w1, w2, w3; the final input vertex closes
// the sequence.
func subdivide(zs []complex128) []complex128 {
	out := make([]complex128, 0, 4*(len(zs)-1)+1)
	for i := 1; i < len(zs); i++ {
		z1, z2 := zs[i-1], zs[i]
		w1 := (2*z1 + z2) / 3
		w3 := (z1 + 2*z2) / 3
		w2 := (z1+z2)/2 + complex(0, math.Sqrt(3)/2)*(w1-w3)
		out = append(out, z1, w1, w2, w3)
	}
	return append(out, zs[len(zs)-1])
}
