package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, "birds", 12)
	p.OnLayoutComplete(ctx, "birds", 9, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopHTTPHooks{}.OnRequest(ctx, "GET", "/trees", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

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

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestPrometheus(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	if err != nil {
		t.Fatal(err)
	}

	p.OnLayoutComplete(ctx, "birds", 9, time.Millisecond, nil)
	p.OnLayoutComplete(ctx, "birds", 0, time.Millisecond, errors.New("boom"))
	p.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)
	p.OnCacheHit(ctx, "layout")
	p.OnCacheMiss(ctx, "layout")
	p.OnCacheMiss(ctx, "layout")
	p.OnCacheSet(ctx, "artifact", 100)
	p.OnCacheSet(ctx, "artifact", 50)
	p.OnRequest(ctx, "GET", "/trees/{name}/svg", 200, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"layout ok", p.layouts.WithLabelValues("ok"), 1},
		{"layout error", p.layouts.WithLabelValues("error"), 1},
		{"render", p.renders.WithLabelValues("svg,png", "ok"), 1},
		{"cache hit", p.cacheLookups.WithLabelValues("layout", "hit"), 1},
		{"cache miss", p.cacheLookups.WithLabelValues("layout", "miss"), 2},
		{"cache bytes", p.cacheBytes.WithLabelValues("artifact"), 150},
		{"requests", p.requests.WithLabelValues("GET", "/trees/{name}/svg", "200"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(p.rectangles); n != 1 {
		t.Errorf("rectangles histogram has %d series, want 1", n)
	}
}

func TestPrometheusDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheus(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPrometheus(reg); err == nil {
		t.Error("registering twice should fail")
	}
}

func TestInstall(t *testing.T) {
	defer Reset()
	p, err := NewPrometheus(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	Install(p)
	if Pipeline() != PipelineHooks(p) || Cache() != CacheHooks(p) || HTTP() != HTTPHooks(p) {
		t.Error("Install should register p for every hook type")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
