package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Extract hooks
	e := NoopExtractHooks{}
	e.OnLoadStart(ctx, "net.toml")
	e.OnLoadComplete(ctx, "net.toml", 3, time.Second, nil)
	e.OnExtractStart(ctx, "wta")
	e.OnExtractComplete(ctx, "wta", 100, 4200, time.Second, nil)
	e.OnExportStart(ctx, "orca_net.json")
	e.OnExportComplete(ctx, "orca_net.json", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "description")
	c.OnCacheMiss(ctx, "description")
	c.OnCacheSet(ctx, "description", 1024)

	// API hooks
	a := NoopAPIHooks{}
	a.OnRequest(ctx, "POST", "/v1/descriptions")
	a.OnResponse(ctx, "POST", "/v1/descriptions", 201, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Extract().(NoopExtractHooks); !ok {
		t.Error("Extract() should return NoopExtractHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	// Set custom hooks
	customExtract := &testExtractHooks{}
	SetExtractHooks(customExtract)
	if Extract() != ExtractHooks(customExtract) {
		t.Error("SetExtractHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != CacheHooks(customCache) {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil hooks are ignored
	SetExtractHooks(nil)
	if Extract() != ExtractHooks(customExtract) {
		t.Error("SetExtractHooks(nil) should keep existing hooks")
	}

	// Reset restores noop defaults
	Reset()
	if _, ok := Extract().(NoopExtractHooks); !ok {
		t.Error("Reset() should restore NoopExtractHooks")
	}
}

type testExtractHooks struct {
	NoopExtractHooks
	extractCount int
}

func (h *testExtractHooks) OnExtractStart(ctx context.Context, network string) {
	h.extractCount++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}
