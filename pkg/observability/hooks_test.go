package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

// countingPipelineHooks records how often each phase fired.
type countingPipelineHooks struct {
	NoopPipelineHooks
	mu        sync.Mutex
	generates int
	fits      int
	renders   int
}

func (h *countingPipelineHooks) OnGenerateStart(context.Context, int, string) {
	h.mu.Lock()
	h.generates++
	h.mu.Unlock()
}

func (h *countingPipelineHooks) OnFitStart(context.Context, int) {
	h.mu.Lock()
	h.fits++
	h.mu.Unlock()
}

func (h *countingPipelineHooks) OnRenderStart(context.Context, []string) {
	h.mu.Lock()
	h.renders++
	h.mu.Unlock()
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Errorf("Server() = %T, want NoopServerHooks", Server())
	}
}

func TestNoopMethodsAreCallable(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnGenerateStart(ctx, 4, "exp")
	p.OnGenerateComplete(ctx, 4, "exp", 769, time.Second, nil)
	p.OnFitStart(ctx, 769)
	p.OnFitComplete(ctx, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "figure")
	c.OnCacheMiss(ctx, "scene")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/api/figure")
	s.OnResponse(ctx, "GET", "/api/figure", 200, time.Second)
	s.OnStream(ctx, "/api/live", 12, time.Second)
}

func TestRegisteredHooksReceiveCalls(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &countingPipelineHooks{}
	SetPipelineHooks(rec)

	ctx := context.Background()
	Pipeline().OnGenerateStart(ctx, 3, "identity")
	Pipeline().OnGenerateStart(ctx, 5, "sin")
	Pipeline().OnFitStart(ctx, 193)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.generates != 2 || rec.fits != 1 || rec.renders != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/1/0", rec.generates, rec.fits, rec.renders)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &countingPipelineHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	if Pipeline() != rec {
		t.Errorf("Pipeline() = %T, want the previously registered hooks", Pipeline())
	}
}

func TestResetRestoresNoop(t *testing.T) {
	Reset()
	SetPipelineHooks(&countingPipelineHooks{})
	SetCacheHooks(NoopCacheHooks{})
	SetServerHooks(NoopServerHooks{})

	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("after Reset, Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetPipelineHooks(&countingPipelineHooks{})
				Pipeline().OnGenerateStart(context.Background(), 1, "identity")
			}
		}()
	}
	wg.Wait()
}
