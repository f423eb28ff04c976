package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/measure"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

// Measure output formats.
const (
	measureFormatTable = "table"
	measureFormatJSON  = "json"
	measureFormatCSV   = "csv"
)

// measureCommand creates the measure command for perimeter and
// dimension analysis.
func (c *CLI) measureCommand() *cobra.Command {
	var (
		maxLevel int
		format   string
		output   string
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Measure perimeter growth across levels",
		Long: `Measure perimeter growth across levels.

The measure command computes one row per level from 0 up to --max-level:
vertex and edge counts, total perimeter, the growth ratio against the
previous level, and the dimension estimate that ratio implies. The
estimate converges on log4/log3 at every level because each subdivision
multiplies the perimeter by exactly 4/3.

Output defaults to a table on stdout; use --format json or csv together
with --output to feed the series into other tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case measureFormatTable, measureFormatJSON, measureFormatCSV:
			default:
				return errors.New(errors.ErrCodeInvalidFormat,
					"unknown measure format: %s (valid: table, json, csv)", format)
			}
			if err := errors.ValidateLevel(maxLevel, c.levelCap()); err != nil {
				return err
			}
			return c.runMeasure(cmd.Context(), maxLevel, format, output, noCache, refresh)
		},
	}

	cmd.Flags().IntVarP(&maxLevel, "max-level", "l", pipeline.DefaultMeasureLevel, "highest level to measure (0-12)")
	cmd.Flags().StringVarP(&format, "format", "f", measureFormatTable, "output format: table, json, csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for json/csv (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runMeasure computes the series and writes it in the requested format.
func (c *CLI) runMeasure(ctx context.Context, maxLevel int, format, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Measuring levels 0-%d...", maxLevel))
	spinner.Start()

	rows, cacheHit, err := runner.MeasureSeriesWithCacheInfo(ctx, maxLevel, refresh)
	if err != nil {
		spinner.StopWithError("Measurement failed")
		return fmt.Errorf("measure: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch format {
	case measureFormatJSON:
		return writeMeasureJSON(rows, output)
	case measureFormatCSV:
		return writeMeasureCSV(rows, output)
	default:
		printMeasureTable(rows, cacheHit)
		return nil
	}
}

// printMeasureTable renders the series as a bordered table on stdout.
func printMeasureTable(rows []measure.Summary, cacheHit bool) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		ratio, dimension := "-", "-"
		if r.Level > 0 {
			ratio = fmt.Sprintf("%.4f", r.Ratio)
			dimension = fmt.Sprintf("%.4f", r.Dimension)
		}
		data = append(data, []string{
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Vertices),
			strconv.Itoa(r.Edges),
			fmt.Sprintf("%.4f", r.Perimeter),
			ratio,
			dimension,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Vertices", "Edges", "Perimeter", "Ratio", "Dimension").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Align(lipgloss.Right).PaddingLeft(1).PaddingRight(1)
		})

	fmt.Println(t)
	printDetail("theoretical dimension log4/log3 = %.6f", measure.TheoreticalDimension())
	printStats(0, 0, cacheHit)
}

// writeMeasureJSON writes the series as indented JSON.
func writeMeasureJSON(rows []measure.Summary, output string) error {
	w, err := openOutput(output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer w.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	if output != "" {
		printSuccess("Series measured")
		printFile(output)
	}
	return nil
}

// writeMeasureCSV writes the series as CSV with a header row.
func writeMeasureCSV(rows []measure.Summary, output string) error {
	w, err := openOutput(output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"level", "vertices", "edges", "perimeter", "ratio", "dimension"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Vertices),
			strconv.Itoa(r.Edges),
			strconv.FormatFloat(r.Perimeter, 'f', -1, 64),
			strconv.FormatFloat(r.Ratio, 'f', -1, 64),
			strconv.FormatFloat(r.Dimension, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if output != "" {
		printSuccess("Series measured")
		printFile(output)
	}
	return nil
}
