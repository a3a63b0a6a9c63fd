package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

// basicfont glyph advance in pixels.
const glyphWidth = 7.0

var black = colorful.Color{}

// RenderPNG rasterizes l. The image uses the same geometry as [RenderSVG]
// with a fixed-width bitmap font for labels. Images larger than [MaxPixels]
// on either side are rejected with INVALID_INPUT.
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)
	key := palette.NewColorKey(l.ColorCodes())

	ppu := c.pixelsPerUnit(l)
	mapW, mapH := l.Width*ppu, l.Height*ppu
	legendW := c.legendWidth(mapW, key.Len())

	if !(mapW+legendW <= MaxPixels && mapH <= MaxPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"image of %.0fx%.0f pixels exceeds the %.0f pixel limit; lower the scale",
			mapW+legendW, mapH, MaxPixels)
	}

	width := max(1, int(math.Ceil(mapW+legendW)))
	height := max(1, int(math.Ceil(mapH)))

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineWidth(1)

	for _, r := range l.Rectangles {
		fill := key.Color(r.ColorCode())
		drawBox(dc, r.X()*ppu, r.Y()*ppu, r.Width()*ppu, r.Height()*ppu, fill)
	}
	for _, r := range l.Rectangles {
		if c.labelled(l, r) {
			drawLabel(dc, r.Label(), r.X()*ppu, r.Y()*ppu, r.Width()*ppu, r.Height()*ppu,
				palette.Contrast(key.Color(r.ColorCode())))
		}
	}

	if legendW > 0 {
		codes := key.Codes()
		step := mapH / float64(len(codes))
		for i, code := range codes {
			y := float64(i) * step
			fill := key.Color(code)
			drawBox(dc, mapW, y, legendW, step, fill)
			drawLabel(dc, legendLabel(code), mapW, y, legendW*0.95, step, palette.Contrast(fill))
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBox(dc *gg.Context, x, y, w, h float64, fill colorful.Color) {
	dc.DrawRectangle(x, y, w, h)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(black)
	dc.Stroke()
}

func drawLabel(dc *gg.Context, label string, x, y, w, h float64, fg colorful.Color) {
	if h < float64(basicfont.Face7x13.Height) {
		return
	}
	maxChars := int(w * fontWidthRatio / glyphWidth)
	if maxChars < 1 {
		return
	}
	dc.SetColor(fg)
	dc.DrawStringAnchored(truncate(label, maxChars), x+w/2, y+h/2, 0.5, 0.5)
}
