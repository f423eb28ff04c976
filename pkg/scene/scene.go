// Package scene fits curves into a drawable frame.
//
// # Overview
//
// A [Scene] is the layout stage of the pipeline: it takes a figure in world
// coordinates (the complex plane, Y pointing up) and produces canvas
// coordinates (SVG space, Y pointing down) inside a frame of the requested
// size, scaled uniformly and centered with a margin. Renderers consume
// scenes without knowing anything about the mathematics upstream.
//
// Scenes serialize to JSON for stage caching and carry bson tags for the
// archive, mirroring the figure format one stage earlier.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/kochwerk/kochwerk/pkg/figure"
)

// Frame defaults. A margin is the fraction of the frame left blank on each
// side.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 800.0
	DefaultMargin = 0.05
)

var (
	// ErrFrameTooSmall is returned by [Fit] when a frame dimension is zero
	// or negative.
	ErrFrameTooSmall = errors.New("frame dimensions must be positive")

	// ErrMarginTooLarge is returned by [Fit] when the margin fraction
	// leaves no room for the curve. Margins are per side, so 0.5 would
	// consume the whole frame.
	ErrMarginTooLarge = errors.New("margin must be in [0, 0.5)")

	// ErrEmptyScene is returned by [Unmarshal] when the scene carries no
	// path to render.
	ErrEmptyScene = errors.New("scene must contain a path")
)

// Options controls how a figure is fitted into its frame.
// The zero value is not usable; use [DefaultOptions] as the starting point.
type Options struct {
	Width  float64 // Frame width in canvas units
	Height float64 // Frame height in canvas units
	Margin float64 // Blank fraction per side, in [0, 0.5)
}

// DefaultOptions returns the standard 800×800 frame with a 5% margin.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, Margin: DefaultMargin}
}

// Scene is a figure fitted into a frame, in canvas coordinates.
//
// Canvas coordinates have the origin in the top-left corner with Y growing
// downward, matching SVG and raster conventions. The world-space Y axis is
// flipped during fitting, so a curve's apex ends up near the top of the
// frame.
type Scene struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Margin float64 `json:"margin,omitempty" bson:"margin,omitempty"`

	// Provenance of the fitted curve, for captions and the archive.
	Level int    `json:"level" bson:"level"`
	Map   string `json:"map,omitempty" bson:"map,omitempty"`

	// Render preferences carried over from figure metadata.
	Style string `json:"style,omitempty" bson:"style,omitempty"`
	Seed  int64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Title string `json:"title,omitempty" bson:"title,omitempty"`

	// Path is the fitted closed vertex sequence in canvas coordinates.
	Path []Point `json:"path" bson:"path"`
}

// Point is a canvas-space vertex.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Fit maps a figure into a frame: uniform scale, centered, margin applied,
// Y axis flipped from world to canvas orientation.
func Fit(f figure.Figure, opts Options) (Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return Scene{}, ErrFrameTooSmall
	}
	if opts.Margin < 0 || opts.Margin >= 0.5 {
		return Scene{}, ErrMarginTooLarge
	}

	p, err := f.Polyline()
	if err != nil {
		return Scene{}, fmt.Errorf("fit figure: %w", err)
	}

	// A closed polyline with distinct consecutive vertices always spans at
	// least one axis, so a usable scale exists.
	min, max := p.BoundingBox()
	bw, bh := max.X-min.X, max.Y-min.Y

	availW := opts.Width * (1 - 2*opts.Margin)
	availH := opts.Height * (1 - 2*opts.Margin)

	// Uniform scale: the tighter axis wins. A flat axis defers to the
	// other one.
	scale := math.Inf(1)
	if bw > 0 {
		scale = availW / bw
	}
	if bh > 0 {
		scale = math.Min(scale, availH/bh)
	}

	offX := (opts.Width - bw*scale) / 2
	offY := (opts.Height - bh*scale) / 2

	path := make([]Point, p.Len())
	for i := 0; i < p.Len(); i++ {
		v := p.At(i)
		path[i] = Point{
			X: offX + (v.X-min.X)*scale,
			Y: opts.Height - offY - (v.Y-min.Y)*scale,
		}
	}

	s := Scene{
		Width:  opts.Width,
		Height: opts.Height,
		Margin: opts.Margin,
		Level:  f.Level,
		Map:    f.Map,
		Path:   path,
	}
	s.applyMeta(f.Meta)
	return s, nil
}

// applyMeta copies recognized render preferences from figure metadata.
// JSON round-trips store numbers as float64, so the seed accepts both
// integer and float forms.
func (s *Scene) applyMeta(meta map[string]any) {
	if meta == nil {
		return
	}
	if style, ok := meta[figure.MetaStyle].(string); ok {
		s.Style = style
	}
	if title, ok := meta[figure.MetaTitle].(string); ok {
		s.Title = title
	}
	switch seed := meta[figure.MetaSeed].(type) {
	case int:
		s.Seed = int64(seed)
	case int64:
		s.Seed = seed
	case float64:
		s.Seed = int64(seed)
	}
}

// IsClosed reports whether the fitted path forms a closed loop.
func (s Scene) IsClosed() bool {
	return len(s.Path) >= 2 && s.Path[0] == s.Path[len(s.Path)-1]
}

// Validate checks that the scene carries a renderable path and a usable
// frame.
func (s Scene) Validate() error {
	if len(s.Path) == 0 {
		return ErrEmptyScene
	}
	if s.Width <= 0 || s.Height <= 0 {
		return ErrFrameTooSmall
	}
	return nil
}

// Marshal serializes a Scene to pretty-printed JSON bytes.
func Marshal(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Scene and validates it.
func Unmarshal(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}
