package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner doesn't store pipeline results. Multiple goroutines can safely
// use the same Runner with different options, as long as each passes its own
// tree or the trees are not modified concurrently.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the lifetime of cache entries written by the runner.
	// Zero uses cache.TTLLayout and cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, name string, t *tree.Tree, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = t.Len()
	if data, err := io.MarshalTree(t); err == nil {
		result.TreeHash = cache.Hash(data)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, name, t, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.Rectangles = len(l.Rectangles)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"tree", name,
		"rectangles", len(l.Rectangles),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out a copy of t with caching and returns cache
// hit info. The key is derived from the canonical encoding of t and the
// layout options, so equal trees share entries regardless of their source.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, name string, t *tree.Tree, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	treeData, err := io.MarshalTree(t)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(treeData), opts.LayoutKeyOpts())

	if data, hit := r.get(ctx, cacheKey, keyTypeLayout); hit {
		cached, err := layout.Unmarshal(data)
		if err == nil {
			// The cached document may stem from an identical tree stored
			// under another name.
			cached.Tree = name
			return cached, true, nil
		}
		r.Logger.Debug("discarding unreadable cached layout", "error", err)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, name, t.Len())
	start := time.Now()
	l, err := ComputeLayout(name, t, opts)
	hooks.OnLayoutComplete(ctx, name, len(l.Rectangles), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		r.set(ctx, cacheKey, keyTypeLayout, data, r.ttl(cache.TTLLayout))
	}

	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, name string, t *tree.Tree, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, name, t, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every requested format was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	formats := sortedFormats(opts.Formats)

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit := r.get(ctx, key, keyTypeArtifact)
		if !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()
	rendered, err := RenderFromLayout(l, opts)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, key, keyTypeArtifact, data, r.ttl(cache.TTLArtifact))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key from the cache. Cache failures count as misses; a broken
// cache slows the pipeline down but never fails it.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
