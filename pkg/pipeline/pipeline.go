// Package pipeline wires the snowflake stages into one reusable unit.
//
// The CLI and the HTTP server both drive their work through this
// package, so defaults, validation, and caching behave the same no
// matter which entry point a request came from.
//
// # Stages
//
//  1. Generate: construct the snowflake boundary at the requested level
//     and push it through the selected analytic map
//  2. Fit: frame the figure into canvas coordinates
//  3. Render: emit artifacts (SVG, PNG, PDF, JSON, DOT)
//
// Stages run independently or end to end, and each stage result is
// cached under a content-addressed key.
//
// # Usage
//
// The usual entry point is a Runner:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Level:   4,
//	    Map:     "identity",
//	    VizType: "curve",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Stages are also exposed one at a time:
//
//	f, err := runner.Generate(ctx, opts)
//	s, err := runner.Fit(ctx, f, opts)
//	artifacts, err := runner.Render(ctx, s, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kochwerk/kochwerk/pkg/cache"
	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/koch"
	"github.com/kochwerk/kochwerk/pkg/measure"
	"github.com/kochwerk/kochwerk/pkg/scene"
	"github.com/kochwerk/kochwerk/pkg/xform"
)

// =============================================================================
// Defaults Shared by the CLI and the Server
// =============================================================================

const (
	// DefaultLevel is the subdivision level used when none is requested.
	// Level 4 is detailed enough to look fractal and small enough to
	// render instantly.
	DefaultLevel = 4

	// DefaultMap is the identity deformation (the plain snowflake).
	DefaultMap = "identity"

	// DefaultWidth and DefaultHeight mirror the scene package's frame
	// size so both entry points agree on the canvas.
	DefaultWidth  = scene.DefaultWidth
	DefaultHeight = scene.DefaultHeight

	// DefaultMargin is the default blank frame fraction per side.
	DefaultMargin = scene.DefaultMargin

	// DefaultSeed fixes the handdrawn jitter so repeated runs emit
	// identical bytes.
	DefaultSeed = int64(42)

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultMeasureLevel is the deepest level measured when none is given.
	DefaultMeasureLevel = 6
)

// Visualization type constants.
const (
	VizTypeCurve = "curve"
	VizTypeWire  = "wire"
)

// DefaultVizType selects the filled-curve view.
const DefaultVizType = VizTypeCurve

// Style name constants.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// DefaultStyle selects the hand-drawn look.
const DefaultStyle = StyleHanddrawn

// Output format names.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats. DOT only makes
// sense for the wire view; render dispatch rejects it for curve scenes.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles enumerates the selectable styles.
var ValidStyles = map[string]bool{
	StyleSimple:    true,
	StyleHanddrawn: true,
}

// ValidVizTypes enumerates the two view kinds.
var ValidVizTypes = map[string]bool{
	VizTypeCurve: true,
	VizTypeWire:  true,
}

// =============================================================================
// Options and Results
// =============================================================================

// Options carries every knob the pipeline understands. The JSON tags
// let the server accept the same structure in request bodies.
type Options struct {
	// Generate stage
	Level   int    `json:"level"`
	Map     string `json:"map,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // Bypass cached stage results

	// Fit stage
	VizType string  `json:"viz_type,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Margin  float64 `json:"margin,omitempty"`

	// Render stage
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Seed     int64    `json:"seed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`    // PNG resolution multiplier
	Vertices bool     `json:"vertices,omitempty"` // Draw per-vertex markers
	Labels   bool     `json:"labels,omitempty"`   // Show vertex indices (wire view)
	Caption  bool     `json:"caption,omitempty"`  // Place a caption under the curve
	Title    string   `json:"title,omitempty"`    // Caption text override

	// Runtime wiring, never serialized.
	Logger *log.Logger `json:"-"`

	// MaxLevel lowers the level ceiling below [koch.MaxLevel] when
	// positive. It is operator policy from the config file, so it has no
	// JSON tag and is never read from request payloads.
	MaxLevel int `json:"-"`

	// validated guards against applying defaults twice.
	validated bool `json:"-"`
}

// Result collects everything a pipeline run produced.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Figure is the generated boundary in world coordinates.
	Figure figure.Figure

	// FigureHash is the content hash of the figure.
	FigureHash string

	// Scene is the boundary fitted into the frame.
	Scene scene.Scene

	// Summary holds the measured geometry of the figure.
	Summary measure.Summary

	// Artifacts holds the rendered bytes keyed by format name.
	Artifacts map[string][]byte

	// Stats carries the timings recorded during the run.
	Stats Stats

	// CacheInfo records stage-level cache provenance.
	CacheInfo CacheInfo
}

// Stats records per-stage timings and the curve size.
type Stats struct {
	VertexCount  int
	EdgeCount    int
	GenerateTime time.Duration
	FitTime      time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports which stage results came from cache.
type CacheInfo struct {
	FigureHit bool // Generated figure served from cache
	SceneHit  bool // Fitted scene served from cache
	RenderHit bool // Every requested artifact served from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats rejects the first unknown format in the list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle rejects unknown style names.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, handdrawn)", style)
	}
	return nil
}

// ValidateVizType rejects anything but the curve and wire views.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: curve, wire)", vizType)
	}
	return nil
}

// ValidateMap checks that an analytic map is registered.
func ValidateMap(name string) error {
	if _, ok := xform.Find(name); !ok {
		return errors.New(errors.ErrCodeInvalidMap,
			"unknown map: %q (available: %v)", name, xform.Names())
	}
	return nil
}

// =============================================================================
// Per-Stage Defaults
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field the
// full pipeline reads. Idempotent; repeat calls return immediately.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForFit(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks the generate-stage fields and applies their
// defaults. A zero level stays zero: the base triangle is a valid request.
func (o *Options) ValidateForGenerate() error {
	if err := errors.ValidateLevel(o.Level, o.LevelCap()); err != nil {
		return err
	}
	if o.Map == "" {
		o.Map = DefaultMap
	}
	if err := ValidateMap(o.Map); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// LevelCap returns the effective level ceiling: the generator's hard
// cap, lowered when the operator configured max as a tighter one. Zero
// and negative values mean unconfigured.
func LevelCap(max int) int {
	if max > 0 && max < koch.MaxLevel {
		return max
	}
	return koch.MaxLevel
}

// LevelCap returns the ceiling ValidateForGenerate holds Level to.
func (o *Options) LevelCap() int { return LevelCap(o.MaxLevel) }

// SetFitDefaults fills unset fit-stage fields.
func (o *Options) SetFitDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForFit applies fit defaults and checks the view kind.
func (o *Options) ValidateForFit() error {
	o.SetFitDefaults()
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults fills unset render-stage fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies fit and render defaults, then checks the
// fields both stages read.
func (o *Options) ValidateForRender() error {
	o.SetFitDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsCurve returns true if this is a curve visualization.
func (o *Options) IsCurve() bool {
	return o.VizType == "" || o.VizType == VizTypeCurve
}

// IsWire returns true if this is a wire (node-link) visualization.
func (o *Options) IsWire() bool {
	return o.VizType == VizTypeWire
}

// SceneKeyOpts derives the cache key inputs for the fit stage.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Margin: o.Margin,
	}
}

// ArtifactKeyOpts derives the cache key inputs for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:  o.VizType,
		Format:   format,
		Style:    o.Style,
		Seed:     o.Seed,
		Scale:    o.Scale,
		Vertices: o.Vertices,
		Caption:  o.Caption || o.Title != "",
		Labels:   o.Labels,
	}
}
