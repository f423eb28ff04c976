package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/kochwerk/kochwerk/pkg/cache"
	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/koch"
	"github.com/kochwerk/kochwerk/pkg/measure"
	"github.com/kochwerk/kochwerk/pkg/observability"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// Runner executes pipeline stages and caches their results. It holds no
// per-run state, so one Runner may serve concurrent requests with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner builds a Runner. Nil arguments get safe substitutes: a
// NullCache (no caching), a DefaultKeyer, and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → fit → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Generate
	hooks.OnGenerateStart(ctx, opts.Level, opts.Map)
	generateStart := time.Now()
	f, figureHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Level, opts.Map, 0, time.Since(generateStart), err)
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Figure = f
	result.Stats.GenerateTime = time.Since(generateStart)
	result.CacheInfo.FigureHit = figureHit

	// Measure the boundary for stats and API responses
	p, err := f.Polyline()
	if err != nil {
		return nil, fmt.Errorf("measure: %w", err)
	}
	result.Summary = measure.Summarize(f.Level, p)
	result.Stats.VertexCount = result.Summary.Vertices
	result.Stats.EdgeCount = result.Summary.Edges
	hooks.OnGenerateComplete(ctx, opts.Level, opts.Map,
		result.Stats.VertexCount, result.Stats.GenerateTime, nil)

	// Compute figure hash for cache keys and API responses
	if figureData, err := figure.Marshal(f); err == nil {
		result.FigureHash = cache.Hash(figureData)
	}

	r.Logger.Info("generated figure",
		"level", f.Level,
		"map", f.Map,
		"vertices", result.Stats.VertexCount,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Fit
	hooks.OnFitStart(ctx, result.Stats.VertexCount)
	fitStart := time.Now()
	s, sceneHit, err := r.FitWithCacheInfo(ctx, f, opts)
	if err != nil {
		hooks.OnFitComplete(ctx, time.Since(fitStart), err)
		return nil, fmt.Errorf("fit: %w", err)
	}
	result.Scene = s
	result.Stats.FitTime = time.Since(fitStart)
	result.CacheInfo.SceneHit = sceneHit
	hooks.OnFitComplete(ctx, result.Stats.FitTime, nil)

	r.Logger.Info("fitted scene",
		"frame", fmt.Sprintf("%.0fx%.0f", s.Width, s.Height),
		"duration", result.Stats.FitTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo runs the generate stage. The bool reports
// whether the figure was served from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (figure.Figure, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return figure.Figure{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.FigureKey(opts.Level, opts.Map)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := figure.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "figure")
				return cached, true, nil
			}
			// Entry unreadable; recompute below.
		}
		observability.Cache().OnCacheMiss(ctx, "figure")
	}

	f, err := Generate(opts)
	if err != nil {
		return figure.Figure{}, false, err
	}

	if data, err := figure.Marshal(f); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFigure)
		observability.Cache().OnCacheSet(ctx, "figure", len(data))
	}

	return f, false, nil
}

// Generate runs the generate stage, ignoring cache provenance.
func (r *Runner) Generate(ctx context.Context, opts Options) (figure.Figure, error) {
	f, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return f, err
}

// FitWithCacheInfo runs the fit stage. The bool reports whether the
// scene was served from cache.
func (r *Runner) FitWithCacheInfo(ctx context.Context, f figure.Figure, opts Options) (scene.Scene, bool, error) {
	if err := opts.ValidateForFit(); err != nil {
		return scene.Scene{}, false, err
	}
	r.applyLogger(&opts)

	// The scene key hangs off the figure's content hash.
	figureData, err := figure.Marshal(f)
	if err != nil {
		return scene.Scene{}, false, fmt.Errorf("serialize figure for cache key: %w", err)
	}
	figureHash := cache.Hash(figureData)
	cacheKey := r.Keyer.SceneKey(figureHash, opts.SceneKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := scene.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return cached, true, nil
			}
			// Entry unreadable; recompute below.
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	s, err := Fit(f, opts)
	if err != nil {
		return scene.Scene{}, false, err
	}

	if data, err := scene.Marshal(s); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return s, false, nil
}

// Fit runs the fit stage, ignoring cache provenance.
func (r *Runner) Fit(ctx context.Context, f figure.Figure, opts Options) (scene.Scene, error) {
	s, _, err := r.FitWithCacheInfo(ctx, f, opts)
	return s, err
}

// RenderWithCacheInfo runs the render stage. The bool is true only when
// every requested format was served from cache; a single miss rerenders
// them all, since most of the cost is shared between formats.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s scene.Scene, opts Options) (map[string][]byte, bool, error) {
	// Scene metadata has to flow into the options before keys are
	// computed, otherwise a stamped style would render under the wrong
	// artifact key.
	opts = applySceneMetadata(opts, s)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Artifact keys hang off the scene's content hash.
	sceneData, err := scene.Marshal(s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				artifacts = nil
				break
			}
			artifacts[format] = data
		}

		if artifacts != nil {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(s, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render runs the render stage, ignoring cache provenance.
func (r *Runner) Render(ctx context.Context, s scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// MeasureSeriesWithCacheInfo measures every level from 0 through
// maxLevel. The bool reports whether the series was served from cache.
func (r *Runner) MeasureSeriesWithCacheInfo(ctx context.Context, maxLevel int, refresh bool) ([]measure.Summary, bool, error) {
	if err := errors.ValidateLevel(maxLevel, koch.MaxLevel); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.MeasureKey(maxLevel)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []measure.Summary
			// A length mismatch means the entry predates a change in the
			// series layout; recompute rather than trust it.
			if err := json.Unmarshal(data, &cached); err == nil && len(cached) == maxLevel+1 {
				observability.Cache().OnCacheHit(ctx, "measure")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "measure")
	}

	series, err := measure.Series(maxLevel)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(series); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLMeasure)
		observability.Cache().OnCacheSet(ctx, "measure", len(data))
	}

	return series, false, nil
}

// MeasureSeries measures every level through maxLevel, ignoring cache
// provenance.
func (r *Runner) MeasureSeries(ctx context.Context, maxLevel int) ([]measure.Summary, error) {
	series, _, err := r.MeasureSeriesWithCacheInfo(ctx, maxLevel, false)
	return series, err
}

// Close shuts down the cache backend.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger gives options without a logger the runner's own.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
