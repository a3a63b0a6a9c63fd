package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

const cellCSS = `
    .cell { stroke: black; stroke-width: 1; }
    .cell:hover { stroke-width: 3; }
    .label { font-family: sans-serif; pointer-events: none; }`

// RenderSVG renders l as an SVG document.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	c := newConfig(opts...)
	key := palette.NewColorKey(l.ColorCodes())

	ppu := c.pixelsPerUnit(l)
	mapW, mapH := l.Width*ppu, l.Height*ppu
	legendW := c.legendWidth(mapW, key.Len())
	totalW := mapW + legendW

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, mapH, totalW, mapH)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cellCSS)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", totalW, mapH)

	buf.WriteString(`  <g class="cells">` + "\n")
	for _, r := range l.Rectangles {
		renderCell(&buf, r, ppu, key)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="labels">` + "\n")
	for _, r := range l.Rectangles {
		if c.labelled(l, r) {
			renderLabel(&buf, r.Label(), r.X()*ppu, r.Y()*ppu, r.Width()*ppu, r.Height()*ppu)
		}
	}
	buf.WriteString("  </g>\n")

	if legendW > 0 {
		renderLegend(&buf, key, mapW, legendW, mapH)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCell(buf *bytes.Buffer, r treemap.Rectangle, ppu float64, key *palette.ColorKey) {
	code := r.ColorCode()
	fmt.Fprintf(buf, `    <rect class="cell" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s">`,
		r.X()*ppu, r.Y()*ppu, r.Width()*ppu, r.Height()*ppu, key.Hex(code))
	fmt.Fprintf(buf, "<title>%s (%s)</title></rect>\n", escapeXML(r.Label()), escapeXML(code.String()))
}

func renderLabel(buf *bytes.Buffer, label string, x, y, w, h float64) {
	text, size := fitLabel(label, w, h)
	fmt.Fprintf(buf, `    <text class="label" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		x+w/2, y+h/2, size, escapeXML(text))
}

// renderLegend draws one swatch per color code, stacked top to bottom in a
// column starting at x0.
func renderLegend(buf *bytes.Buffer, key *palette.ColorKey, x0, w, h float64) {
	codes := key.Codes()
	step := h / float64(len(codes))

	buf.WriteString(`  <g class="legend">` + "\n")
	for i, code := range codes {
		y := float64(i) * step
		fmt.Fprintf(buf, `    <rect class="cell" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			x0, y, w, step, key.Hex(code))
		if step >= fontSizeMin {
			renderLabel(buf, legendLabel(code), x0, y, w*0.95, step)
		}
	}
	buf.WriteString("  </g>\n")
}
