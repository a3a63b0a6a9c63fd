package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
)

// countingCache wraps a cache and records traffic.
type countingCache struct {
	cache.Cache
	gets, sets int
	ttls       []time.Duration
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.Cache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	c.ttls = append(c.ttls, ttl)
	return c.Cache.Set(ctx, key, data, ttl)
}

// brokenCache fails every operation with a retryable error.
type brokenCache struct{ calls int }

func (c *brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	c.calls++
	return nil, false, cache.Retryable(fmt.Errorf("get: %w", cache.ErrNetwork))
}

func (c *brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	c.calls++
	return cache.Retryable(fmt.Errorf("set: %w", cache.ErrNetwork))
}

func (c *brokenCache) Delete(context.Context, string) error { return nil }
func (c *brokenCache) Close() error                         { return nil }

func newFileRunner(t *testing.T) (*Runner, *countingCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cc := &countingCache{Cache: fc}
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	return NewRunner(cc, nil, logger), cc
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("Cache = %T, want *cache.NullCache", r.Cache)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestRunnerLayoutCaches(t *testing.T) {
	ctx := context.Background()
	r, cc := newFileRunner(t)

	first, hit, err := r.LayoutWithCacheInfo(ctx, "birds", birds(), Options{})
	if err != nil {
		t.Fatalf("first layout: %v", err)
	}
	if hit {
		t.Error("first layout reported a cache hit")
	}
	if cc.sets != 1 {
		t.Errorf("sets = %d, want 1", cc.sets)
	}

	// An identical tree under another name reuses the entry.
	second, hit, err := r.LayoutWithCacheInfo(ctx, "copy", birds(), Options{})
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !hit {
		t.Error("second layout missed the cache")
	}
	if second.Tree != "copy" {
		t.Errorf("cached layout tree = %q, want copy", second.Tree)
	}
	if len(second.Rectangles) != len(first.Rectangles) {
		t.Fatalf("cached layout has %d rectangles, want %d", len(second.Rectangles), len(first.Rectangles))
	}
	for i := range first.Rectangles {
		if first.Rectangles[i].String() != second.Rectangles[i].String() {
			t.Errorf("rectangle %d: %s != %s", i, second.Rectangles[i], first.Rectangles[i])
		}
	}

	// Different options are a different key.
	if _, hit, err := r.LayoutWithCacheInfo(ctx, "birds", birds(), Options{Width: 2}); err != nil || hit {
		t.Errorf("resized layout: hit=%v err=%v", hit, err)
	}
}

func TestRunnerLayoutErrorsAreNotCached(t *testing.T) {
	r, cc := newFileRunner(t)
	_, err := r.Layout(context.Background(), "bad", tree.New("r").AddChild(tree.New("x")), Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if cc.sets != 0 {
		t.Errorf("sets = %d, want 0", cc.sets)
	}
}

func TestRunnerRenderCaches(t *testing.T) {
	ctx := context.Background()
	r, cc := newFileRunner(t)
	opts := Options{Formats: []string{"txt", "json"}}

	l, err := r.Layout(ctx, "birds", birds(), opts)
	if err != nil {
		t.Fatal(err)
	}
	setsAfterLayout := cc.sets

	first, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if hit {
		t.Error("first render reported a cache hit")
	}
	if cc.sets-setsAfterLayout != 2 {
		t.Errorf("artifact sets = %d, want 2", cc.sets-setsAfterLayout)
	}

	second, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !hit {
		t.Error("second render missed the cache")
	}
	for format, data := range first {
		if !bytes.Equal(second[format], data) {
			t.Errorf("%s artifact differs after caching", format)
		}
	}

	// Adding a format invalidates the all-cached shortcut.
	opts.Formats = append(opts.Formats, "svg")
	if _, hit, err := r.RenderWithCacheInfo(ctx, l, opts); err != nil || hit {
		t.Errorf("render with extra format: hit=%v err=%v", hit, err)
	}
}

func TestRunnerTTL(t *testing.T) {
	ctx := context.Background()
	r, cc := newFileRunner(t)

	if _, err := r.Layout(ctx, "birds", birds(), Options{}); err != nil {
		t.Fatal(err)
	}
	r.TTL = time.Minute
	if _, err := r.Layout(ctx, "birds", birds(), Options{Width: 3}); err != nil {
		t.Fatal(err)
	}

	want := []time.Duration{cache.TTLLayout, time.Minute}
	if len(cc.ttls) != len(want) {
		t.Fatalf("ttls = %v, want %v", cc.ttls, want)
	}
	for i := range want {
		if cc.ttls[i] != want[i] {
			t.Errorf("ttl[%d] = %v, want %v", i, cc.ttls[i], want[i])
		}
	}
}

func TestRunnerSurvivesBrokenCache(t *testing.T) {
	old := cache.RetryDelay
	cache.RetryDelay = time.Millisecond
	defer func() { cache.RetryDelay = old }()

	bc := &brokenCache{}
	r := NewRunner(bc, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))

	res, err := r.Execute(context.Background(), "birds", birds(), Options{Formats: []string{"txt"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("unexpected cache hits: %+v", res.CacheInfo)
	}
	if bc.calls == 0 {
		t.Error("cache was never consulted")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.NewWithOptions(&buf, log.Options{}))

	res, err := r.Execute(ctx, "birds", birds(), Options{Formats: []string{"svg", "txt"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.TreeHash == "" {
		t.Error("TreeHash is empty")
	}
	if res.Stats.NodeCount != 5 || res.Stats.Rectangles != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(res.Artifacts))
	}
	if !bytes.Contains(buf.Bytes(), []byte("computed layout")) {
		t.Errorf("log output lacks layout line: %s", buf.String())
	}

	again, err := r.Execute(ctx, "birds", birds(), Options{Formats: []string{"svg", "txt"}})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want both hits", again.CacheInfo)
	}
	if again.TreeHash != res.TreeHash {
		t.Error("tree hash changed between runs")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), "birds", birds(), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want INVALID_FORMAT", err)
	}
}
