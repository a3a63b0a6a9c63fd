package sink

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/treemap"
)

const (
	// DefaultMinLabelSide is the fraction of the bounding box both sides of a
	// rectangle must exceed to be labelled.
	DefaultMinLabelSide = 0.03

	// DefaultPixels is the raster size of the longer side of the bounding box
	// when no scale is given.
	DefaultPixels = 800.0

	// MaxPixels bounds either side of a raster image.
	MaxPixels = 16384.0

	legendRatio = 0.3
)

// Option configures rendering.
type Option func(*config)

type config struct {
	scale        float64
	legend       bool
	minLabelSide float64
	logger       *log.Logger
}

// WithScale sets the number of output pixels per layout unit. Zero or a
// negative value selects the default, which maps the longer side of the
// bounding box to [DefaultPixels].
func WithScale(s float64) Option { return func(c *config) { c.scale = s } }

// WithLegend toggles the color key panel.
func WithLegend(on bool) Option { return func(c *config) { c.legend = on } }

// WithMinLabelSide overrides [DefaultMinLabelSide].
func WithMinLabelSide(f float64) Option {
	return func(c *config) {
		if f >= 0 {
			c.minLabelSide = f
		}
	}
}

// WithLogger sets the logger used for "not labeling" reports.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{minLabelSide: DefaultMinLabelSide, logger: log.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) pixelsPerUnit(l layout.Layout) float64 {
	if c.scale > 0 {
		return c.scale
	}
	return DefaultPixels / max(l.Width, l.Height)
}

// legendWidth returns the width of the legend panel in output units, or 0
// when the legend is off or there is nothing to show.
func (c config) legendWidth(mapWidth float64, codes int) float64 {
	if !c.legend || codes == 0 {
		return 0
	}
	return mapWidth * legendRatio
}

// labelled reports whether r is large enough to carry its label, logging the
// ones that are not.
func (c config) labelled(l layout.Layout, r treemap.Rectangle) bool {
	if r.Width() > c.minLabelSide*l.Width && r.Height() > c.minLabelSide*l.Height {
		return true
	}
	c.logger.Debug("not labeling", "label", r.Label())
	return false
}

// legendLabel is the text shown for a color code in the legend.
func legendLabel(code treemap.ColorCode) string {
	if code.Equal(treemap.DefaultColorCode()) {
		return "(root)"
	}
	return code.String()
}
