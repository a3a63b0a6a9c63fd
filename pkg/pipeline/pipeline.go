// Package pipeline runs the load → layout → render stages of the treemap
// tool.
//
// The CLI and the HTTP server both go through this package so defaults,
// validation, caching and instrumentation behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	t, err := pipeline.LoadTree("birds.json", "birds")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, "birds", t, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, "birds", t, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/render/sink"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultWidth is the default bounding box width (the unit square).
	DefaultWidth = 1.0

	// DefaultHeight is the default bounding box height.
	DefaultHeight = 1.0

	// DefaultColorBy is the default color policy name.
	DefaultColorBy = treemap.ColorCategory

	// DefaultMinLabelSide is the default label threshold.
	DefaultMinLabelSide = sink.DefaultMinLabelSide
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	ColorBy string  `json:"color_by,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"` // pixels per layout unit; 0 = auto
	Legend       bool     `json:"legend,omitempty"`
	MinLabelSide float64  `json:"min_label_side,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed treemap.
	Layout layout.Layout

	// TreeHash is the content hash of the input tree.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Rectangles int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColorBy checks that a color policy name is valid.
func ValidateColorBy(name string) error {
	_, err := treemap.ParseColorPolicy(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.ColorBy == "" {
		o.ColorBy = DefaultColorBy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	return ValidateColorBy(o.ColorBy)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.MinLabelSide == 0 {
		o.MinLabelSide = DefaultMinLabelSide
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be a non-negative number, got %v", o.Scale)
	}
	if side := max(o.Width, o.Height) * o.Scale; side > sink.MaxPixels {
		return errors.New(errors.ErrCodeInvalidInput,
			"scale %v gives %.0f pixels, more than the %.0f pixel limit", o.Scale, side, sink.MaxPixels)
	}
	if o.MinLabelSide < 0 || o.MinLabelSide > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"min_label_side must be between 0 and 1, got %v", o.MinLabelSide)
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		ColorBy: o.ColorBy,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Scale:        o.Scale,
		Legend:       o.Legend,
		MinLabelSide: o.MinLabelSide,
	}
}

// SinkOptions translates the render options for the sink package.
func (o *Options) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithScale(o.Scale),
		sink.WithLegend(o.Legend),
		sink.WithMinLabelSide(o.MinLabelSide),
		sink.WithLogger(o.Logger),
	}
}

// sortedFormats returns the formats without duplicates, in a stable order.
func sortedFormats(formats []string) []string {
	out := slices.Clone(formats)
	slices.Sort(out)
	return slices.Compact(out)
}
