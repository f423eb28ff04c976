package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/pipeline"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// visualizeCommand creates the visualize command for rendering from a
// computed scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Render artifacts from a fitted scene",
		Long: `Render artifacts from a fitted scene.

The visualize command takes a scene.json file (produced by 'fit') and
renders it to SVG, PNG, PDF, DOT, or JSON. The scene already carries its
frame coordinates, so this step is purely about drawing.

Style, seed, and title stored in the scene apply unless flags override
them. Finished artifacts land in the local stage cache, so repeating a
render is cheap.

Use 'render' as a shortcut to go directly from flags to visual output.`,
		Args: cobra.ExactArgs(1),
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
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path; with several formats the extension is replaced per format")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

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

// runVisualize loads the scene and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	s, err := scene.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	opts.Level = s.Level
	opts.Map = s.Map

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d formats...", len(opts.Formats)))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		output:    output,
		input:     input,
		vertices:  len(s.Path),
		edges:     len(s.Path) - 1,
		cacheHit:  cacheHit,
	})
}
