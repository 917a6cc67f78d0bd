// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about layout planning, canvas metadata cache
// operations, and canvas size provider calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnPlanStart(ctx, docID, itemCount)
//	// ... plan the batch ...
//	observability.Layout().OnPlanComplete(ctx, docID, placed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout engine.
type LayoutHooks interface {
	// Plan events (batch text placement)
	OnPlanStart(ctx context.Context, documentID string, itemCount int)
	OnPlanComplete(ctx context.Context, documentID string, placed int, duration time.Duration, err error)

	// Arrange events (batch repositioning)
	OnArrangeStart(ctx context.Context, strategy string, elementCount int)
	OnArrangeComplete(ctx context.Context, strategy string, duration time.Duration, err error)

	// OnClamp records a bounds adjustment made during placement.
	OnClamp(ctx context.Context, documentID string, warnings int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from canvas metadata cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, documentID string)

	// OnCacheMiss records a cache miss (including expired entries).
	OnCacheMiss(ctx context.Context, documentID string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, documentID string)

	// OnCacheInvalidate records an explicit invalidation.
	OnCacheInvalidate(ctx context.Context, documentID string)
}

// =============================================================================
// Provider Hooks
// =============================================================================

// ProviderHooks receives events from canvas size provider calls.
type ProviderHooks interface {
	// OnFetch records an outgoing canvas size request.
	OnFetch(ctx context.Context, documentID string)

	// OnFetchComplete records the result of a canvas size request.
	OnFetchComplete(ctx context.Context, documentID string, duration time.Duration, err error)

	// OnFallback records a fall back to the default canvas size.
	OnFallback(ctx context.Context, documentID string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPlanStart(context.Context, string, int)                             {}
func (NoopLayoutHooks) OnPlanComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopLayoutHooks) OnArrangeStart(context.Context, string, int)                          {}
func (NoopLayoutHooks) OnArrangeComplete(context.Context, string, time.Duration, error)      {}
func (NoopLayoutHooks) OnClamp(context.Context, string, int)                                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)        {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)       {}
func (NoopCacheHooks) OnCacheSet(context.Context, string)        {}
func (NoopCacheHooks) OnCacheInvalidate(context.Context, string) {}

// NoopProviderHooks is a no-op implementation of ProviderHooks.
type NoopProviderHooks struct{}

func (NoopProviderHooks) OnFetch(context.Context, string)                                {}
func (NoopProviderHooks) OnFetchComplete(context.Context, string, time.Duration, error)  {}
func (NoopProviderHooks) OnFallback(context.Context, string, error)                      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	providerHooks ProviderHooks = NoopProviderHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout operations.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetProviderHooks registers custom provider hooks.
// This should be called once at application startup before any provider calls.
func SetProviderHooks(h ProviderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		providerHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Provider returns the registered provider hooks.
func Provider() ProviderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return providerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	providerHooks = NoopProviderHooks{}
}
