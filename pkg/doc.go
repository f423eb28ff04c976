// Package pkg provides the core libraries for Kochwerk snowflake generation.
//
// # Overview
//
// Kochwerk generates Koch snowflake boundaries, deforms them through
// analytic maps of the complex plane, and renders the results. The pkg
// directory is organized into four main areas:
//
//  1. Geometry ([koch], [curve], [xform]) - boundary construction and deformation
//  2. Artifacts ([figure], [scene], [measure]) - serialized curves, frames, measurements
//  3. Rendering ([render]) - SVG, PNG, PDF, and DOT output
//  4. Orchestration ([pipeline], [cache], [archive]) - staged execution with caching
//
// # Architecture
//
// The typical data flow through Kochwerk:
//
//	Level + Map
//	     ↓
//	  [koch] package (subdivide the triangle boundary)
//	     ↓
//	  [xform] package (deform vertices through an analytic map)
//	     ↓
//	  [scene] package (fit the curve into a frame)
//	     ↓
//	  [render] package (draw the fitted path)
//	     ↓
//	  SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Run the whole pipeline through a runner:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/kochwerk/kochwerk/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil) // uncached
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Level:   5,
//	    Map:     "sin",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    // handle err
//	}
//	os.WriteFile("snowflake.svg", result.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// ## Geometry
//
// [koch] - The subdivision rule. [koch.Snowflake] builds the closed
// boundary at a level; each level replaces every segment with four,
// so level n has 3·4ⁿ segments.
//
// [curve] - Planar polylines with arclength, bounds, and evaluation by
// normalized parameter. The shared geometric vocabulary of everything else.
//
// [xform] - Named analytic maps (identity, exp, sin, reciprocal, bessel)
// applied vertex-wise to a polyline, with pole guarding.
//
// ## Artifacts
//
// [figure] - A generated boundary with its provenance (level, map) and
// free-form metadata, serializable to JSON.
//
// [scene] - A figure fitted into a pixel frame: uniform scale, centered,
// y-axis flipped for screen coordinates.
//
// [measure] - Perimeter, growth ratios, and the fractal dimension
// estimate. [measure.Series] tabulates every level up to a maximum.
//
// ## Rendering
//
// [render/curveview] - The curve drawn as a closed filled path, with a
// pluggable style: clean flat default or a seeded pencil-sketch look
// ([render/curveview/styles/handdrawn]).
//
// [render/wireview] - The vertex graph as a DOT node-link diagram with
// pinned positions, rendered through Graphviz.
//
// [render] - Top-level SVG-to-PDF conversion shared by both views.
//
// ## Orchestration
//
// [pipeline] - The generate → fit → render pipeline used by CLI and
// server. Pure stage functions plus a [pipeline.Runner] that adds
// content-addressed caching and instrumentation hooks.
//
// [cache] - Cache backends (file, Redis, null) and the key derivation
// shared by every stage.
//
// [archive] - Persisted figures in MongoDB (or memory), retrievable by ID
// for re-fitting and re-rendering.
//
// [config] - TOML configuration from ~/.config/kochwerk/config.toml.
//
// [errors] - Coded errors that carry stable machine-readable codes across
// the CLI and HTTP boundaries.
//
// [observability] - Pluggable hook interfaces the runner and server call
// at stage boundaries.
//
// # Common Workflows
//
// Generate a figure and measure it:
//
//	f, _ := pipeline.Generate(pipeline.Options{Level: 4, Map: "identity"})
//	p, _ := f.Polyline()
//	summary := measure.Summarize(4, p)
//
// Fit and render with a custom style:
//
//	s, _ := scene.Fit(f, scene.Options{Width: 800, Height: 800, Margin: 0.05})
//	style := handdrawn.New(42)
//	svg := curveview.RenderSVG(s, curveview.WithStyle(style))
//
// Archive a figure for later:
//
//	store, _ := archive.NewMongoStore(ctx, uri, "kochwerk", "figures")
//	entry := archive.NewEntry("demo", f)
//	_ = store.Put(ctx, entry)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/koch/...      # Specific package
//	go test -run Example        # Examples only
//
// [koch]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/koch
// [curve]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/curve
// [xform]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/xform
// [figure]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/figure
// [scene]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/scene
// [measure]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/measure
// [render]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/render
// [render/curveview]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/render/curveview
// [render/curveview/styles/handdrawn]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/render/curveview/styles/handdrawn
// [render/wireview]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/render/wireview
// [pipeline]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/cache
// [archive]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/archive
// [config]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/config
// [errors]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/errors
// [observability]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/observability
// [koch.Snowflake]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/koch#Snowflake
// [measure.Series]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/measure#Series
// [pipeline.Runner]: https://pkg.go.dev/github.com/kochwerk/kochwerk/pkg/pipeline#Runner
package pkg
