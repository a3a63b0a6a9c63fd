package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook interface on top of Prometheus collectors.
type Prometheus struct {
	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	rectangles     prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_layouts_total",
			Help: "Layouts computed, by outcome.",
		}, []string{"outcome"}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "treemap_layout_duration_seconds",
			Help:    "Time spent computing layouts.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		rectangles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "treemap_layout_rectangles",
			Help:    "Rectangles per computed layout.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_renders_total",
			Help: "Render calls, by formats and outcome.",
		}, []string{"formats", "outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "treemap_render_duration_seconds",
			Help:    "Time spent rendering.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_cache_lookups_total",
			Help: "Cache lookups, by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_cache_written_bytes_total",
			Help: "Bytes written to the cache, by key type.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treemap_http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	for _, c := range []prometheus.Collector{
		p.layouts, p.layoutDuration, p.rectangles,
		p.renders, p.renderDuration,
		p.cacheLookups, p.cacheBytes,
		p.requests, p.requestLatency,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Install registers p for pipeline, cache and HTTP events.
func Install(p *Prometheus) {
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetHTTPHooks(p)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnLayoutStart(context.Context, string, int) {}

func (p *Prometheus) OnLayoutComplete(_ context.Context, _ string, rects int, d time.Duration, err error) {
	p.layouts.WithLabelValues(outcome(err)).Inc()
	p.layoutDuration.Observe(d.Seconds())
	if err == nil {
		p.rectangles.Observe(float64(rects))
	}
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	p.renders.WithLabelValues(strings.Join(formats, ","), outcome(err)).Inc()
	p.renderDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestLatency.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
