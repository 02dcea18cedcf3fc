package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// The CLI registers it under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Register installs h for all hook categories.
func (h *LogHooks) Register() {
	SetGeometryHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnSolveStart(_ context.Context, id, kind string) {
	h.logger.Debug("solve start", "id", id, "kind", kind)
}

func (h *LogHooks) OnSolveComplete(_ context.Context, id, kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "id", id, "kind", kind, "duration", d, "err", err)
		return
	}
	h.logger.Debug("solve complete", "id", id, "kind", kind, "duration", d)
}

func (h *LogHooks) OnNotReady(_ context.Context, id string) {
	h.logger.Debug("layout not ready", "id", id)
}

func (h *LogHooks) OnSceneComplete(_ context.Context, links int, d time.Duration, err error) {
	h.logger.Debug("scene complete", "links", links, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ GeometryHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
