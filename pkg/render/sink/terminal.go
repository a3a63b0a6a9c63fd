package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

// cell is one character of the terminal grid.
type cell struct {
	ch    rune
	style lipgloss.Style
	id    int // index of the owning rectangle, -1 for background
}

// RenderTerminal draws l into a cols × rows character grid. Each rectangle is
// filled with its palette color; rectangles at least three cells in both
// directions get a box border, and labels are written into the top-left of
// every labelled rectangle that has room.
func RenderTerminal(l layout.Layout, cols, rows int, opts ...Option) string {
	c := newConfig(opts...)
	key := palette.NewColorKey(l.ColorCodes())
	cols, rows = max(1, cols), max(1, rows)

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' ', style: lipgloss.NewStyle(), id: -1}
		}
	}

	sx := float64(cols) / l.Width
	sy := float64(rows) / l.Height
	for i, r := range l.Rectangles {
		x0 := int(math.Round(r.X() * sx))
		y0 := int(math.Round(r.Y() * sy))
		x1 := min(cols, int(math.Round((r.X()+r.Width())*sx)))
		y1 := min(rows, int(math.Round((r.Y()+r.Height())*sy)))
		if x1 <= x0 || y1 <= y0 {
			continue
		}

		bg := key.Color(r.ColorCode())
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(bg.Hex())).
			Foreground(lipgloss.Color(palette.Contrast(bg).Hex()))
		label := ""
		if c.labelled(l, r) {
			label = r.Label()
		}
		drawBlock(grid, i, x0, y0, x1-x0, y1-y0, label, style)
	}

	lines := make([]string, 0, rows)
	for _, row := range grid {
		lines = append(lines, renderRow(row))
	}

	if c.legend && key.Len() > 0 {
		for _, code := range key.Codes() {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(key.Hex(code))).Render("  ")
			lines = append(lines, swatch+" "+truncate(legendLabel(code), max(3, cols-3)))
		}
	}
	return strings.Join(lines, "\n")
}

func drawBlock(grid [][]cell, id, x, y, w, h int, label string, style lipgloss.Style) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			grid[j][i] = cell{ch: ' ', style: style, id: id}
		}
	}

	lx, ly, room := x, y, w
	if w >= 3 && h >= 3 {
		for i := x + 1; i < x+w-1; i++ {
			grid[y][i].ch = '─'
			grid[y+h-1][i].ch = '─'
		}
		for j := y + 1; j < y+h-1; j++ {
			grid[j][x].ch = '│'
			grid[j][x+w-1].ch = '│'
		}
		grid[y][x].ch = '┌'
		grid[y][x+w-1].ch = '┐'
		grid[y+h-1][x].ch = '└'
		grid[y+h-1][x+w-1].ch = '┘'
		lx, ly, room = x+1, y+1, w-2
	}

	if label == "" || room < 1 {
		return
	}
	for i, ch := range []rune(truncate(label, room)) {
		grid[ly][lx+i].ch = ch
	}
}

// renderRow styles runs of cells that belong to the same rectangle together.
func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].id == row[start].id {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.ch)
		}
		b.WriteString(row[start].style.Render(run.String()))
		start = i
	}
	return b.String()
}
