package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnRunStart(ctx, "run", 64, 64)
	p.OnRunComplete(ctx, "run", time.Second, nil)
	p.OnStageStart(ctx, StageGrowth)
	p.OnStageComplete(ctx, StageGrowth, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "terrain")
	c.OnCacheMiss(ctx, "base")
	c.OnCacheSet(ctx, "terrain", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/generate")
	h.OnResponse(ctx, "POST", "/v1/generate", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestStage(t *testing.T) {
	Reset()
	defer Reset()

	rec := &testPipelineHooks{}
	SetPipelineHooks(rec)

	boom := errors.New("boom")
	err := Stage(context.Background(), StageHeight, func() error { return boom })
	if err != boom {
		t.Fatalf("Stage returned %v, want %v", err, boom)
	}
	if len(rec.started) != 1 || rec.started[0] != StageHeight {
		t.Errorf("started = %v", rec.started)
	}
	if len(rec.errs) != 1 || rec.errs[0] != boom {
		t.Errorf("completed errors = %v", rec.errs)
	}
}

// Test implementations
type testPipelineHooks struct {
	NoopPipelineHooks
	started []string
	errs    []error
}

func (h *testPipelineHooks) OnStageStart(_ context.Context, stage string) {
	h.started = append(h.started, stage)
}

func (h *testPipelineHooks) OnStageComplete(_ context.Context, _ string, _ time.Duration, err error) {
	h.errs = append(h.errs, err)
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
