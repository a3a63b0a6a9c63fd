// Package sink renders a computed [layout.Layout] into output formats.
//
//   - SVG ([RenderSVG]): one filled, outlined rect per rectangle plus labels
//   - PNG ([RenderPNG]): the same picture rasterized with gg
//   - Terminal ([RenderTerminal]): a character-cell treemap styled with lipgloss
//   - JSON ([RenderJSON]) and plain text ([RenderText]) for tooling
//
// Fill colors come from a [palette.ColorKey] built over the layout's color
// codes. Rectangles are labelled only when both sides exceed a fraction of
// the bounding box ([DefaultMinLabelSide], see [WithMinLabelSide]); smaller
// ones are drawn unlabelled and reported at debug level. Labels that do not
// fit are truncated with "..".
//
// [WithLegend] adds a color key panel to the right of the map.
//
// [layout.Layout]: github.com/matzehuels/treemap/pkg/layout.Layout
// [palette.ColorKey]: github.com/matzehuels/treemap/pkg/render/palette.ColorKey
package sink
