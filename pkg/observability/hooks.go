// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and backend-agnostic: consumers register hook
// implementations at startup, libraries call whatever is registered. The
// defaults do nothing.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGeometryHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Geometry().OnSolveStart(ctx, id, kind)
//	// ... solve ...
//	observability.Geometry().OnSolveComplete(ctx, id, kind, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Geometry Hooks
// =============================================================================

// GeometryHooks receives events from the connector pipeline.
type GeometryHooks interface {
	// Solve events, one pair per connector.
	OnSolveStart(ctx context.Context, id, kind string)
	OnSolveComplete(ctx context.Context, id, kind string, duration time.Duration, err error)

	// OnNotReady records a connector skipped because a rectangle is missing.
	OnNotReady(ctx context.Context, id string)

	// Scene events.
	OnSceneComplete(ctx context.Context, links int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGeometryHooks is a no-op implementation of GeometryHooks.
type NoopGeometryHooks struct{}

func (NoopGeometryHooks) OnSolveStart(context.Context, string, string) {}
func (NoopGeometryHooks) OnSolveComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopGeometryHooks) OnNotReady(context.Context, string)                           {}
func (NoopGeometryHooks) OnSceneComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	geometryHooks GeometryHooks = NoopGeometryHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetGeometryHooks registers custom geometry hooks.
// This should be called once at application startup.
func SetGeometryHooks(h GeometryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		geometryHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Geometry returns the registered geometry hooks.
func Geometry() GeometryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return geometryHooks
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
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	geometryHooks = NoopGeometryHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
