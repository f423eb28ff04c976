package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

// defaultRenderBase is the output base used when render is invoked
// without --output.
const defaultRenderBase = "snowflake"

// renderCommand creates the render command, the one-shot path from
// flags to finished artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{
		Level: pipeline.DefaultLevel,
		Map:   pipeline.DefaultMap,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate, fit, and render in one pass",
		Long: `Generate, fit, and render in one pass.

The render command runs the whole pipeline: it generates the boundary
for the requested level and map, fits it into a frame, and renders the
result to one or more formats. Each stage is cached independently, so
re-rendering the same figure with a different style only redoes the
drawing.

Use generate/fit/visualize instead when you want to inspect or reuse
the intermediate files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfigDefaults(cmd, &opts)
			opts.Formats = c.parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if opts.Style != "" {
				if err := pipeline.ValidateStyle(opts.Style); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path; with several formats the extension is replaced per format")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	cmd.Flags().IntVarP(&opts.Level, "level", "l", pipeline.DefaultLevel, "recursion depth (0-12)")
	cmd.Flags().StringVarP(&opts.Map, "map", "m", pipeline.DefaultMap, "analytic map: identity, exp, sin, reciprocal, bessel")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Margin, "margin", 0, "frame margin as a fraction of the frame (default 0.05)")

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", "", "visualization type: curve (default), wire")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: handdrawn (default), simple")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "jitter seed for the handdrawn style")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().BoolVar(&opts.Vertices, "vertices", false, "mark curve vertices")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label vertices in wire output")
	cmd.Flags().BoolVar(&opts.Caption, "caption", false, "draw a caption under the curve")
	cmd.Flags().StringVar(&opts.Title, "title", "", "caption title (implies --caption)")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering level %d snowflake...", opts.Level))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    output,
		input:     defaultRenderBase,
		vertices:  result.Stats.VertexCount,
		edges:     result.Stats.EdgeCount,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}
