package pipeline

import (
	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/tree"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// ComputeLayout lays out a copy of t; t itself is left untouched. opts must
// already be validated (see [Options.ValidateForLayout]).
func ComputeLayout(name string, t *tree.Tree, opts Options) (layout.Layout, error) {
	policy, err := treemap.ParseColorPolicy(opts.ColorBy)
	if err != nil {
		return layout.Layout{}, err
	}
	rects, err := treemap.Layout(t.Clone(), opts.Width, opts.Height, treemap.WithColorPolicy(policy))
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Layout{
		Tree:       name,
		Width:      opts.Width,
		Height:     opts.Height,
		ColorBy:    opts.ColorBy,
		Rectangles: rects,
	}, nil
}
