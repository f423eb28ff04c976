// Package measure computes geometric statistics of snowflake boundaries:
// perimeter, level-to-level growth, and the fractal dimension estimated
// from that growth.
//
// The snowflake perimeter grows by a factor of 4/3 per subdivision level,
// which pins its Hausdorff dimension at log 4 / log 3 ≈ 1.2619. [Dimension]
// recovers the dimension from a measured growth ratio via
// D = 1 + ln(r)/ln(3), so the measured series can be checked against
// [TheoreticalDimension] without trusting the generator.
package measure

import (
	"errors"
	"math"

	"github.com/kochwerk/kochwerk/pkg/curve"
	"github.com/kochwerk/kochwerk/pkg/koch"
)

var (
	// ErrNonPositiveLength is returned by [GrowthRatio] when the previous
	// perimeter is zero or negative, which would make the ratio undefined.
	ErrNonPositiveLength = errors.New("perimeter must be positive")

	// ErrNonPositiveRatio is returned by [Dimension] when the growth ratio
	// is zero or negative. The logarithm of such a ratio is undefined.
	ErrNonPositiveRatio = errors.New("growth ratio must be positive")
)

// Summary captures the measured quantities of one boundary.
type Summary struct {
	Level     int     `json:"level"`               // Subdivision level
	Vertices  int     `json:"vertices"`            // Closed vertex count, 3·4^level+1
	Edges     int     `json:"edges"`               // Segment count, 3·4^level
	Perimeter float64 `json:"perimeter"`           // Total boundary length
	Ratio     float64 `json:"ratio,omitempty"`     // Perimeter growth vs the previous level (0 for level 0)
	Dimension float64 `json:"dimension,omitempty"` // Dimension estimate from Ratio (0 for level 0)
}

// Perimeter returns the total boundary length of a polyline.
func Perimeter(p curve.Polyline) float64 {
	return p.Arclen()
}

// Summarize measures a single boundary at a known level. Ratio and
// Dimension stay zero because they need the previous level as reference;
// use [Series] for the full progression.
func Summarize(level int, p curve.Polyline) Summary {
	return Summary{
		Level:     level,
		Vertices:  p.Len(),
		Edges:     p.Segments(),
		Perimeter: Perimeter(p),
	}
}

// GrowthRatio returns the perimeter growth factor cur/prev between two
// successive levels. Returns ErrNonPositiveLength when prev is not a usable
// reference length.
func GrowthRatio(prev, cur float64) (float64, error) {
	if prev <= 0 {
		return 0, ErrNonPositiveLength
	}
	return cur / prev, nil
}

// Dimension estimates the fractal dimension from a perimeter growth ratio r
// as D = 1 + ln(r)/ln(3). A ratio of exactly 4/3 recovers the snowflake's
// theoretical dimension; a ratio of 1 (no growth) yields dimension 1, an
// ordinary rectifiable curve.
func Dimension(ratio float64) (float64, error) {
	if ratio <= 0 {
		return 0, ErrNonPositiveRatio
	}
	return 1 + math.Log(ratio)/math.Log(3), nil
}

// TheoreticalDimension returns the exact Hausdorff dimension of the Koch
// snowflake boundary, log 4 / log 3.
func TheoreticalDimension() float64 {
	return math.Log(4) / math.Log(3)
}

// Series generates and measures every level from 0 through maxLevel,
// filling in growth ratios and dimension estimates from level 1 on.
//
// Level bounds are enforced by the generator: negative maxLevel yields
// [koch.ErrNegativeLevel] and values beyond [koch.MaxLevel] yield
// [koch.ErrLevelTooDeep].
func Series(maxLevel int) ([]Summary, error) {
	if maxLevel < 0 {
		return nil, koch.ErrNegativeLevel
	}
	if maxLevel > koch.MaxLevel {
		return nil, koch.ErrLevelTooDeep
	}

	out := make([]Summary, 0, maxLevel+1)
	p := koch.Base()
	for level := 0; ; level++ {
		s := Summarize(level, p)
		if level > 0 {
			prev := out[level-1].Perimeter
			ratio, err := GrowthRatio(prev, s.Perimeter)
			if err != nil {
				return nil, err
			}
			dim, err := Dimension(ratio)
			if err != nil {
				return nil, err
			}
			s.Ratio = ratio
			s.Dimension = dim
		}
		out = append(out, s)

		if level == maxLevel {
			return out, nil
		}
		next, err := koch.Subdivide(p)
		if err != nil {
			return nil, err
		}
		p = next
	}
}
