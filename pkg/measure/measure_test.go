package measure_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kochwerk/kochwerk/pkg/koch"
	"github.com/kochwerk/kochwerk/pkg/measure"
)

// TestPerimeterClosedForm checks measured perimeters against 3·(4/3)^N.
func TestPerimeterClosedForm(t *testing.T) {
	for level := 0; level <= 5; level++ {
		p, err := koch.Snowflake(level)
		require.NoError(t, err)

		want := 3 * math.Pow(4.0/3.0, float64(level))
		require.InDelta(t, want, measure.Perimeter(p), 1e-9, "level %d", level)
	}
}

// TestGrowthRatio covers the happy path and the non-positive reference
// length.
func TestGrowthRatio(t *testing.T) {
	r, err := measure.GrowthRatio(3, 4)
	require.NoError(t, err)
	require.InDelta(t, 4.0/3.0, r, 1e-15)

	_, err = measure.GrowthRatio(0, 4)
	require.ErrorIs(t, err, measure.ErrNonPositiveLength)
	_, err = measure.GrowthRatio(-1, 4)
	require.ErrorIs(t, err, measure.ErrNonPositiveLength)
}

// TestDimension verifies the dimension formula at its two anchor points:
// the snowflake ratio 4/3 and the no-growth ratio 1.
func TestDimension(t *testing.T) {
	d, err := measure.Dimension(4.0 / 3.0)
	require.NoError(t, err)
	require.InDelta(t, measure.TheoreticalDimension(), d, 1e-12)

	flat, err := measure.Dimension(1)
	require.NoError(t, err)
	require.InDelta(t, 1.0, flat, 1e-15)

	_, err = measure.Dimension(0)
	require.ErrorIs(t, err, measure.ErrNonPositiveRatio)
	_, err = measure.Dimension(-2)
	require.ErrorIs(t, err, measure.ErrNonPositiveRatio)
}

// TestTheoreticalDimension pins the known constant log4/log3.
func TestTheoreticalDimension(t *testing.T) {
	require.InDelta(t, 1.261859507142915, measure.TheoreticalDimension(), 1e-15)
}

// TestSummarize checks the single-level measurement against the count law.
func TestSummarize(t *testing.T) {
	p, err := koch.Snowflake(3)
	require.NoError(t, err)

	s := measure.Summarize(3, p)
	require.Equal(t, 3, s.Level)
	require.Equal(t, koch.VertexCount(3), s.Vertices)
	require.Equal(t, koch.EdgeCount(3), s.Edges)
	require.InDelta(t, 3*math.Pow(4.0/3.0, 3), s.Perimeter, 1e-12)
	require.Zero(t, s.Ratio)
	require.Zero(t, s.Dimension)
}

// TestSeries verifies the full measured progression: counts, ratios, and
// dimension estimates for every level.
func TestSeries(t *testing.T) {
	const maxLevel = 5
	rows, err := measure.Series(maxLevel)
	require.NoError(t, err)
	require.Len(t, rows, maxLevel+1)

	for i, row := range rows {
		require.Equal(t, i, row.Level)
		require.Equal(t, koch.VertexCount(i), row.Vertices)
		require.Equal(t, koch.EdgeCount(i), row.Edges)

		if i == 0 {
			require.Zero(t, row.Ratio)
			require.Zero(t, row.Dimension)
			continue
		}
		require.InDelta(t, 4.0/3.0, row.Ratio, 1e-9, "level %d", i)
		require.InDelta(t, measure.TheoreticalDimension(), row.Dimension, 1e-9, "level %d", i)
		require.Greater(t, row.Perimeter, rows[i-1].Perimeter, "level %d", i)
	}
}

// TestSeriesLevelBounds covers the generator's level limits surfacing
// through the series.
func TestSeriesLevelBounds(t *testing.T) {
	_, err := measure.Series(-1)
	require.ErrorIs(t, err, koch.ErrNegativeLevel)

	_, err = measure.Series(koch.MaxLevel + 1)
	require.ErrorIs(t, err, koch.ErrLevelTooDeep)
}
