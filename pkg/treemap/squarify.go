package treemap

import (
	"cmp"
	"slices"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Option configures [ComputeRectangles].
type Option func(*builder)

// WithColorPolicy selects how leaf color codes are derived. The default is
// [ColorByCategory].
func WithColorPolicy(p ColorPolicy) Option {
	return func(b *builder) {
		if p != nil {
			b.color = p
		}
	}
}

type builder struct {
	color ColorPolicy
	out   []Rectangle
}

// SortedTrees returns a copy of ts sorted by value in descending order, with
// ties broken by key in ascending order. The input is not modified.
func SortedTrees(ts []*tree.Tree) []*tree.Tree {
	out := slices.Clone(ts)
	slices.SortStableFunc(out, func(a, b *tree.Tree) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// ComputeRectangles lays out t inside a width × height bounding box and
// returns one rectangle per leaf with non-zero area, labelled with the leaf's
// key.
//
// t must already carry values on every node (see [tree.ComputeInternalValues]).
// Children are laid out largest first using the squarify heuristic: a child
// joins the current row only while doing so strictly lowers the row's worst
// aspect ratio. Zero-valued nodes below a non-zero parent are omitted.
//
// A tree consisting of a single node yields one rectangle covering the whole
// box. A node with children whose values sum to zero cannot be laid out and
// fails with DEGENERATE_INPUT. The result order is deterministic.
func ComputeRectangles(t *tree.Tree, width, height float64, opts ...Option) ([]Rectangle, error) {
	b := &builder{color: ColorByCategory}
	for _, opt := range opts {
		opt(b)
	}

	bounds, err := NewRectangle(0, 0, width, height, "", nil)
	if err != nil {
		return nil, err
	}

	lineage := []string{t.Key}
	if t.IsLeaf() {
		b.emit(t, bounds, lineage)
		return b.out, nil
	}
	if err := b.layout(t, bounds, lineage); err != nil {
		return nil, err
	}
	return b.out, nil
}

// emit records the final rectangle of a leaf, dropping degenerate ones.
func (b *builder) emit(leaf *tree.Tree, bounds Rectangle, lineage []string) {
	if bounds.IsDegenerate() {
		return
	}
	b.out = append(b.out, bounds.withLabel(leaf.Key, b.color(lineage)))
}

// layout partitions bounds among the children of n and recurses.
func (b *builder) layout(n *tree.Tree, bounds Rectangle, lineage []string) error {
	kids := n.Children()
	for _, c := range kids {
		if !c.HasValue {
			return errors.New(errors.ErrCodeMalformedTree,
				"node %q has no value; compute internal values before laying out", c.Key)
		}
	}
	kids = SortedTrees(kids)

	var total float64
	for _, c := range kids {
		total += c.Value
	}
	if total <= 0 {
		return errors.New(errors.ErrCodeDegenerateInput,
			"children of %q have a total value of zero", n.Key)
	}

	remaining := bounds
	start := 0 // index of the first child not yet in a closed row
	for start < len(kids) && kids[start].Value > 0 {
		// Only the non-zero prefix is laid out; sorting puts zeros last.
		remainingTotal := sumValues(kids[start:])

		end := start + 1
		items, leftover, err := ComputeRow(remaining, kids[start:end], remainingTotal)
		if err != nil {
			return err
		}
		worst := worstAspectRatio(items)

		for end < len(kids) && kids[end].Value > 0 {
			nextItems, nextLeftover, err := ComputeRow(remaining, kids[start:end+1], remainingTotal)
			if err != nil {
				return err
			}
			nextWorst := worstAspectRatio(nextItems)
			if nextWorst >= worst {
				break
			}
			items, leftover, worst = nextItems, nextLeftover, nextWorst
			end++
		}

		if err := b.place(items, lineage); err != nil {
			return err
		}
		remaining = leftover
		start = end
	}
	return nil
}

// place emits leaves and recurses into internal nodes of a closed row.
func (b *builder) place(items []RowItem, lineage []string) error {
	for _, it := range items {
		childLineage := append(lineage[:len(lineage):len(lineage)], it.Node.Key)
		if it.Node.IsLeaf() {
			b.emit(it.Node, it.Rect, childLineage)
			continue
		}
		if it.Rect.IsDegenerate() {
			continue
		}
		if err := b.layout(it.Node, it.Rect, childLineage); err != nil {
			return err
		}
	}
	return nil
}

func sumValues(ts []*tree.Tree) float64 {
	var s float64
	for _, t := range ts {
		s += t.Value
	}
	return s
}
