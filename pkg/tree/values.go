package tree

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/treemap/pkg/errors"
)

// ComputeInternalValues sets every internal node's Value to the sum of its
// children's values and returns the value of t.
//
// Precondition: every leaf has a preset, non-negative, finite value.
// Postcondition: every node in the subtree has HasValue set, and each internal
// node's Value equals the sum of its direct children. Leaves are not modified.
//
// Children are visited before their parent, and each node is written once.
// A missing leaf value or a negative value anywhere fails with
// MALFORMED_TREE; the tree may be partially updated in that case.
func ComputeInternalValues(t *Tree) (float64, error) {
	return computeValues(t, nil)
}

func computeValues(t *Tree, ancestors []string) (float64, error) {
	if t.HasValue {
		if err := checkValue(t, ancestors); err != nil {
			return 0, err
		}
	}

	if t.IsLeaf() {
		if !t.HasValue {
			return 0, errors.New(errors.ErrCodeMalformedTree,
				"leaf %s has no value", nodeName(t, ancestors))
		}
		return t.Value, nil
	}

	path := append(slices.Clone(ancestors), t.Key)
	var sum float64
	for _, c := range t.children {
		v, err := computeValues(c, path)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	t.SetValue(sum)
	return sum, nil
}

func checkValue(t *Tree, ancestors []string) error {
	if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
		return errors.New(errors.ErrCodeMalformedTree,
			"node %s has non-finite value %v", nodeName(t, ancestors), t.Value)
	}
	if t.Value < 0 {
		return errors.New(errors.ErrCodeMalformedTree,
			"node %s has negative value %v", nodeName(t, ancestors), t.Value)
	}
	return nil
}

// nodeName renders a node as its full key path for error messages.
func nodeName(t *Tree, ancestors []string) string {
	if len(ancestors) == 0 {
		return `"` + t.Key + `"`
	}
	return `"` + strings.Join(ancestors, " > ") + " > " + t.Key + `"`
}
