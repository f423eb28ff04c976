// Package observability defines the instrumentation hooks the pipeline,
// cache, and server call at operation boundaries.
//
// The library itself depends on no metrics or tracing framework. Each
// event category is an interface with a no-op default; a deployment that
// wants telemetry registers its own implementations once at startup:
//
//	observability.SetPipelineHooks(&otelPipelineHooks{})
//	observability.SetServerHooks(&otelServerHooks{})
//
// and the libraries emit events through the registry:
//
//	observability.Pipeline().OnGenerateStart(ctx, level, mapName)
//	...
//	observability.Pipeline().OnGenerateComplete(ctx, level, mapName, n, elapsed, err)
//
// Registration belongs in main, before any traffic, which also keeps the
// hook packages free of import cycles back into the pipeline.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the visualization pipeline.
type PipelineHooks interface {
	// Generate events
	OnGenerateStart(ctx context.Context, level int, mapName string)
	OnGenerateComplete(ctx context.Context, level int, mapName string, vertexCount int, duration time.Duration, err error)

	// Fit events
	OnFitStart(ctx context.Context, vertexCount int)
	OnFitComplete(ctx context.Context, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. The keyType names the
// stage the entry belongs to: figure, scene, artifact, or measure.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP API server.
type ServerHooks interface {
	// OnRequest records an incoming API request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed API response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnStream records a completed live-stream session and how many frames
	// it delivered.
	OnStream(ctx context.Context, path string, frames int, duration time.Duration)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int, string) {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnFitStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnFitComplete(context.Context, time.Duration, error)              {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every server event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopServerHooks) OnStream(context.Context, string, int, time.Duration)           {}

// registry holds the process-wide hook implementations. Reads outnumber
// writes by far (writes happen once at startup), hence the RWMutex.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

var hooks = registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	server:   NoopServerHooks{},
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored so callers can
// pass an optional implementation through unconditionally.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetServerHooks registers server hooks. Nil is ignored.
func SetServerHooks(h ServerHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.server = h
	hooks.mu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.server
}

// Reset restores the no-op defaults. Tests use this to isolate themselves.
func Reset() {
	hooks.mu.Lock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.server = NoopServerHooks{}
	hooks.mu.Unlock()
}
