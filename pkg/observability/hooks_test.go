package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses, sets, invalidations int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)        { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)       { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string)        { r.sets++ }
func (r *recordingCacheHooks) OnCacheInvalidate(context.Context, string) { r.invalidations++ }

type recordingLayoutHooks struct {
	NoopLayoutHooks
	plans int
}

func (r *recordingLayoutHooks) OnPlanStart(context.Context, string, int) { r.plans++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// None of these should panic.
	Layout().OnPlanStart(ctx, "doc", 3)
	Layout().OnPlanComplete(ctx, "doc", 3, time.Second, nil)
	Layout().OnClamp(ctx, "doc", 1)
	Cache().OnCacheHit(ctx, "doc")
	Cache().OnCacheInvalidate(ctx, "doc")
	Provider().OnFetch(ctx, "doc")
	Provider().OnFallback(ctx, "doc", nil)
}

func TestSetAndReset(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	cache := &recordingCacheHooks{}
	layout := &recordingLayoutHooks{}
	SetCacheHooks(cache)
	SetLayoutHooks(layout)

	Cache().OnCacheHit(ctx, "doc")
	Cache().OnCacheMiss(ctx, "doc")
	Cache().OnCacheSet(ctx, "doc")
	Cache().OnCacheInvalidate(ctx, "doc")
	Layout().OnPlanStart(ctx, "doc", 1)

	if cache.hits != 1 || cache.misses != 1 || cache.sets != 1 || cache.invalidations != 1 {
		t.Errorf("cache hooks not invoked: %+v", cache)
	}
	if layout.plans != 1 {
		t.Errorf("layout hooks not invoked: %+v", layout)
	}

	Reset()
	if _, ok := Cache().(*recordingCacheHooks); ok {
		t.Error("Reset did not restore no-op cache hooks")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetLayoutHooks(nil)
	SetCacheHooks(nil)
	SetProviderHooks(nil)

	if Layout() == nil || Cache() == nil || Provider() == nil {
		t.Error("nil registration should keep previous hooks")
	}
}
