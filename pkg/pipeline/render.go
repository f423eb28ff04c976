package pipeline

import (
	"fmt"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/render/curveview"
	"github.com/kochwerk/kochwerk/pkg/render/curveview/styles"
	"github.com/kochwerk/kochwerk/pkg/render/curveview/styles/handdrawn"
	"github.com/kochwerk/kochwerk/pkg/render/wireview"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// Render generates output artifacts in the requested formats.
//
// Metadata stamped on the scene fills in style, seed, and title when the
// options leave them unset, so a scene loaded from a file renders the way
// it was produced.
func Render(s scene.Scene, opts Options) (map[string][]byte, error) {
	opts = applySceneMetadata(opts, s)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	if opts.IsWire() {
		return renderWire(s, opts)
	}
	return renderCurve(s, opts)
}

// RenderFromSceneData renders artifacts from a serialized scene.
// This is useful when the scene was computed elsewhere (e.g. cached or
// exported by a previous run).
func RenderFromSceneData(data []byte, opts Options) (map[string][]byte, error) {
	s, err := scene.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return Render(s, opts)
}

// renderCurve generates filled-outline outputs.
func renderCurve(s scene.Scene, opts Options) (map[string][]byte, error) {
	svgOpts := buildCurveOptions(s, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = curveview.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = curveview.RenderPNG(s, buildPNGOptions(s, opts)...)
		case FormatPDF:
			data, err = curveview.RenderPDF(s, svgOpts...)
		case FormatJSON:
			data, err = scene.Marshal(s)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"unsupported curve format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderWire generates vertex-graph outputs. The DOT source is built once
// and shared by every requested format.
func renderWire(s scene.Scene, opts Options) (map[string][]byte, error) {
	dot, err := wireview.ToDOT(s, wireview.Options{Labels: opts.Labels})
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = wireview.RenderSVG(dot)
		case FormatPNG:
			data, err = wireview.RenderPNG(dot)
		case FormatPDF:
			data, err = wireview.RenderPDF(dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = scene.Marshal(s)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"unsupported wire format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		artifacts[format] = data
	}

	return artifacts, nil
}

// applySceneMetadata applies scene metadata to options if not already set.
// This ensures that serialized scenes preserve their original rendering
// settings.
func applySceneMetadata(opts Options, s scene.Scene) Options {
	if opts.Style == "" && s.Style != "" {
		opts.Style = s.Style
	}
	if opts.Seed == 0 && s.Seed != 0 {
		opts.Seed = s.Seed
	}
	if opts.Title == "" && s.Title != "" {
		opts.Title = s.Title
	}
	return opts
}

// buildCurveOptions builds SVG rendering options.
func buildCurveOptions(s scene.Scene, opts Options) []curveview.SVGOption {
	var svgOpts []curveview.SVGOption

	switch opts.Style {
	case StyleHanddrawn:
		seed := opts.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		svgOpts = append(svgOpts, curveview.WithStyle(handdrawn.New(uint64(seed))))
	case StyleSimple:
		svgOpts = append(svgOpts, curveview.WithStyle(styles.Simple{}))
	}

	if opts.Vertices {
		svgOpts = append(svgOpts, curveview.WithVertices())
	}
	if text := captionText(s, opts); text != "" {
		svgOpts = append(svgOpts, curveview.WithCaption(text))
	}

	return svgOpts
}

// buildPNGOptions builds raster rendering options. The palette follows the
// selected style so PNG output matches the SVG colors.
func buildPNGOptions(s scene.Scene, opts Options) []curveview.PNGOption {
	pngOpts := []curveview.PNGOption{curveview.WithScale(opts.Scale)}

	switch opts.Style {
	case StyleHanddrawn:
		pngOpts = append(pngOpts, curveview.WithPalette(curveview.PencilPalette()))
	case StyleSimple:
		pngOpts = append(pngOpts, curveview.WithPalette(curveview.SimplePalette()))
	}

	if opts.Vertices {
		pngOpts = append(pngOpts, curveview.WithPNGVertices())
	}
	if text := captionText(s, opts); text != "" {
		pngOpts = append(pngOpts, curveview.WithPNGCaption(text))
	}

	return pngOpts
}

// captionText resolves the caption for a scene. An explicit title wins;
// otherwise the Caption flag requests a generated description.
func captionText(s scene.Scene, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	if !opts.Caption {
		return ""
	}
	text := fmt.Sprintf("Koch snowflake, level %d", s.Level)
	if s.Map != "" && s.Map != DefaultMap {
		text += fmt.Sprintf(", %s map", s.Map)
	}
	return text
}
