package treemap

import "github.com/matzehuels/treemap/pkg/tree"

// Layout runs the full pipeline on t: it aggregates values, assigns paths,
// and computes the rectangles for a width × height box. t is modified in
// place by the first two passes.
func Layout(t *tree.Tree, width, height float64, opts ...Option) ([]Rectangle, error) {
	if _, err := tree.ComputeInternalValues(t); err != nil {
		return nil, err
	}
	tree.ComputePaths(t)
	return ComputeRectangles(t, width, height, opts...)
}
