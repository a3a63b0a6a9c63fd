// Package pkg provides the libraries behind the treemap tool.
//
// # Overview
//
// Treemap turns a weighted tree into a squarified treemap: nested rectangles
// whose areas are proportional to the leaf values. The pkg directory is
// organized into three areas:
//
//  1. Core: [tree] (the tree model, value aggregation, path assignment) and
//     [treemap] (row layout and the recursive squarified builder)
//  2. Documents and rendering: [io] (tree files), [layout] (layout
//     documents), [render/palette] and [render/sink] (SVG, PNG, terminal,
//     JSON and text output)
//  3. Infrastructure: [pipeline] (load → layout → render), [cache],
//     [observability] and [errors]
//
// # Architecture
//
// The typical data flow:
//
//	Tree file (JSON, JSONC, YAML)
//	         ↓
//	    [io] package (decode named trees)
//	         ↓
//	    [tree] package (aggregate values, assign paths)
//	         ↓
//	    [treemap] package (squarified rectangles)
//	         ↓
//	    [render/sink] package (SVG/PNG/terminal/JSON/text)
//
// # Quick Start
//
//	t := tree.New("fruit").
//	    AddChild(tree.NewLeaf("apple", 3)).
//	    AddChild(tree.NewLeaf("pear", 1))
//
//	rects, err := treemap.Layout(t, 1, 1)
//	if err != nil {
//	    return err
//	}
//	for _, r := range rects {
//	    fmt.Println(r) // RECTANGLE 0.0000 0.0000 0.7500 1.0000 apple ...
//	}
//
// [tree]: github.com/matzehuels/treemap/pkg/tree
// [treemap]: github.com/matzehuels/treemap/pkg/treemap
// [io]: github.com/matzehuels/treemap/pkg/io
// [layout]: github.com/matzehuels/treemap/pkg/layout
// [render/palette]: github.com/matzehuels/treemap/pkg/render/palette
// [render/sink]: github.com/matzehuels/treemap/pkg/render/sink
// [pipeline]: github.com/matzehuels/treemap/pkg/pipeline
// [cache]: github.com/matzehuels/treemap/pkg/cache
// [observability]: github.com/matzehuels/treemap/pkg/observability
// [errors]: github.com/matzehuels/treemap/pkg/errors
package pkg
