// Package render groups the treemap output code.
//
// # Overview
//
// Rendering consumes a computed [layout.Layout] and contains no layout
// logic of its own:
//
//   - [palette]: the 512-color pastel wheel and the color key mapping color
//     codes to colors
//   - [sink]: SVG, PNG, terminal, JSON and RECTANGLE-text output
//
//	svg := sink.RenderSVG(l, sink.WithLegend(true))
//	png, err := sink.RenderPNG(l, sink.WithScale(400))
//
// [layout.Layout]: github.com/matzehuels/treemap/pkg/layout
// [palette]: github.com/matzehuels/treemap/pkg/render/palette
// [sink]: github.com/matzehuels/treemap/pkg/render/sink
package render
