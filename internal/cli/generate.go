package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

// generateCommand creates the generate command for producing figure JSON.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		style   string
		title   string
		seed    int64
	)
	opts := pipeline.Options{
		Level: pipeline.DefaultLevel,
		Map:   pipeline.DefaultMap,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a snowflake figure as JSON",
		Long: `Generate a Koch snowflake boundary and write it as figure JSON.

The figure records the subdivision level, the analytic map applied to the
vertices, and the closed vertex sequence. Pass it to 'fit' to compute a
drawable scene, or to 'archive save' to keep it.

Render preferences given here (--style, --seed, --title) are stored in the
figure's metadata and picked up by later stages.

Generated figures land in the local stage cache keyed by level and map,
so repeating a generation is free.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfigDefaults(cmd, &opts)
			if err := pipeline.ValidateMap(opts.Map); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, output, noCache, style, seed, title)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	cmd.Flags().IntVarP(&opts.Level, "level", "l", opts.Level, "subdivision level (0 is the base triangle)")
	cmd.Flags().StringVarP(&opts.Map, "map", "m", opts.Map, "analytic map: identity, exp, sin, reciprocal, bessel")
	cmd.Flags().StringVar(&style, "style", "", "stored style preference: handdrawn, simple")
	cmd.Flags().Int64Var(&seed, "seed", 0, "stored jitter seed for the handdrawn style")
	cmd.Flags().StringVar(&title, "title", "", "stored caption title")

	return cmd
}

// runGenerate produces the figure and writes it to output (or stdout).
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool, style string, seed int64, title string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	f, cacheHit, err := runner.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	attachMeta(&f, style, seed, title)

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := figure.WriteJSON(f, out); err != nil {
		return err
	}

	// Keep stdout clean for piping; report only when writing a file.
	if output != "" {
		printSuccess("Figure generated")
		printFile(output)
		printStats(len(f.Points), len(f.Points)-1, cacheHit)
		printNewline()
		printNextStep("Fit", "kochwerk fit "+output)
	}
	return nil
}

// attachMeta stores render preferences in the figure metadata so fit and
// visualize pick them up without re-specifying flags.
func attachMeta(f *figure.Figure, style string, seed int64, title string) {
	if style == "" && seed == 0 && title == "" {
		return
	}
	if f.Meta == nil {
		f.Meta = make(map[string]any)
	}
	if style != "" {
		f.Meta[figure.MetaStyle] = style
	}
	if seed != 0 {
		f.Meta[figure.MetaSeed] = seed
	}
	if title != "" {
		f.Meta[figure.MetaTitle] = title
	}
}
