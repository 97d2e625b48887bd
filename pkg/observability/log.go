package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger. Stage and cache events log at
// debug level, run and request completions at info.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetBenchHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnStageStart(_ context.Context, backend string, stage Stage) {
	h.logger.Debug("stage started", "backend", backend, "stage", stage)
}

func (h *LogHooks) OnStageComplete(_ context.Context, backend string, stage Stage, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("stage failed", "backend", backend, "stage", stage, "err", err)
		return
	}
	h.logger.Debug("stage done", "backend", backend, "stage", stage, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRunComplete(_ context.Context, runID string, backends, failed int, d time.Duration) {
	h.logger.Info("run complete", "id", runID, "backends", backends, "failed", failed, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, backend string) {
	h.logger.Debug("cache hit", "backend", backend)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, backend string) {
	h.logger.Debug("cache miss", "backend", backend)
}

func (h *LogHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.logger.Debug("cache set", "backend", backend, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ BenchHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
