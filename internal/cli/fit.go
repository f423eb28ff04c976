package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// fitCommand creates the fit command for computing drawable scenes.
func (c *CLI) fitCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "fit [figure.json]",
		Short: "Fit a figure into a drawable scene",
		Long: `Fit a figure into a drawable scene.

The fit command takes a figure.json file (produced by 'generate') and maps
its vertices into canvas coordinates: uniformly scaled, centered, with a
margin. The output is a scene.json file that 'visualize' renders to SVG,
PNG, or PDF.

Fitted scenes land in the local stage cache, so refitting the same
figure into the same frame is free.

Use 'render' as a shortcut to go directly from flags to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfigDefaults(cmd, &opts)
			return c.runFit(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default 800)")
	cmd.Flags().Float64Var(&opts.Margin, "margin", 0, "blank margin fraction per side (default 0.05)")

	return cmd
}

// runFit loads the figure, computes the scene, and writes output.
func (c *CLI) runFit(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	f, err := figure.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load figure: %w", err)
	}
	opts.Level = f.Level
	opts.Map = f.Map

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Fitting level %d figure...", f.Level))
	spinner.Start()

	s, cacheHit, err := runner.FitWithCacheInfo(ctx, f, opts)
	if err != nil {
		spinner.StopWithError("Fit failed")
		return fmt.Errorf("fit: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".figure")
		outputPath = base + ".scene.json"
	}

	if err := scene.ExportJSON(s, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Scene fitted")
	printFile(outputPath)
	printStats(len(s.Path), len(s.Path)-1, cacheHit)
	printNewline()
	printNextStep("Render", "kochwerk visualize "+outputPath)

	return nil
}
