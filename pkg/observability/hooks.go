// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the global registry; main decides who
// listens. The defaults are no-ops, and [LogHooks] reports every event to a
// charmbracelet logger.
//
// Register hooks at application startup:
//
//	observability.SetBenchHooks(observability.NewLogHooks(logger))
//
// Libraries call hooks to emit events:
//
//	observability.Bench().OnStageStart(ctx, "svg", observability.StageCreate)
//	// ... build the scene ...
//	observability.Bench().OnStageComplete(ctx, "svg", observability.StageCreate, d, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names one measured phase of a backend benchmark.
type Stage string

const (
	StageCreate  Stage = "create"
	StageDraw    Stage = "draw"
	StageAnimate Stage = "animate"
	StageZoom    Stage = "zoom"
	StageSelect  Stage = "select"
)

// Stages lists the phases in execution order.
var Stages = []Stage{StageCreate, StageDraw, StageAnimate, StageZoom, StageSelect}

// =============================================================================
// Bench Hooks
// =============================================================================

// BenchHooks receives events from the benchmark runner.
type BenchHooks interface {
	OnStageStart(ctx context.Context, backend string, stage Stage)
	OnStageComplete(ctx context.Context, backend string, stage Stage, duration time.Duration, err error)
	OnRunComplete(ctx context.Context, runID string, backends, failed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from frame cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBenchHooks is a no-op implementation of BenchHooks.
type NoopBenchHooks struct{}

func (NoopBenchHooks) OnStageStart(context.Context, string, Stage)                           {}
func (NoopBenchHooks) OnStageComplete(context.Context, string, Stage, time.Duration, error) {}
func (NoopBenchHooks) OnRunComplete(context.Context, string, int, int, time.Duration)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                        {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	benchHooks BenchHooks = NoopBenchHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetBenchHooks registers benchmark hooks. Nil is ignored.
func SetBenchHooks(h BenchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		benchHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Bench returns the registered benchmark hooks.
func Bench() BenchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return benchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	benchHooks = NoopBenchHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
