package treemap

import (
	"math"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
)

// RowItem pairs a laid-out rectangle with the node it was computed for.
type RowItem struct {
	Rect Rectangle
	Node *tree.Tree
}

// ComputeRow lays out row as one band of the bounding rectangle.
//
// The band claims the fraction sum(row)/total of bounds. It sits against the
// left edge when bounds is at least as wide as it is tall, spanning the full
// height with items stacked top to bottom; otherwise it sits against the top
// edge with items placed left to right. Each item's share of the band is
// proportional to its value. Items whose rectangle would have zero width or
// height are left out of the result but still take their (empty) place in
// the band.
//
// The returned leftover is the part of bounds not covered by the band.
// Every node in row must carry a value; total must be positive.
func ComputeRow(bounds Rectangle, row []*tree.Tree, total float64) ([]RowItem, Rectangle, error) {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, Rectangle{}, errors.New(errors.ErrCodeDegenerateInput,
			"cannot lay out a row against a total of %v", total)
	}
	for _, t := range row {
		if !t.HasValue || t.Value < 0 {
			return nil, Rectangle{}, errors.New(errors.ErrCodeMalformedTree,
				"node %q has no usable value (got %v)", t.Key, t.Value)
		}
	}

	if bounds.Width() >= bounds.Height() {
		return computeRowWide(bounds, row, total)
	}

	items, leftover, err := computeRowWide(transpose(bounds), row, total)
	if err != nil {
		return nil, Rectangle{}, err
	}
	for i := range items {
		items[i].Rect = transpose(items[i].Rect)
	}
	return items, transpose(leftover), nil
}

// computeRowWide is ComputeRow for bounds at least as wide as tall.
func computeRowWide(bounds Rectangle, row []*tree.Tree, total float64) ([]RowItem, Rectangle, error) {
	var rowSum float64
	for _, t := range row {
		rowSum += t.Value
	}

	// Clamped so summation drift between rowSum and total cannot push the
	// strip past the right edge.
	var rowWidth float64
	if rowSum > 0 {
		rowWidth = min(bounds.Width(), bounds.Width()*rowSum/total)
	}

	items := make([]RowItem, 0, len(row))
	y := bounds.Y()
	for _, t := range row {
		var height float64
		if rowSum > 0 {
			height = bounds.Height() * t.Value / rowSum
		}
		if rowWidth > 0 && height > 0 {
			rec, err := NewRectangle(bounds.X(), y, rowWidth, height, "", nil)
			if err != nil {
				return nil, Rectangle{}, err
			}
			items = append(items, RowItem{Rect: rec, Node: t})
		}
		y += height
	}

	leftover, err := NewRectangle(bounds.X()+rowWidth, bounds.Y(),
		max(0, bounds.Width()-rowWidth), bounds.Height(), "", nil)
	if err != nil {
		return nil, Rectangle{}, err
	}
	return items, leftover, nil
}

// worstAspectRatio returns the largest aspect ratio among items, or +Inf when
// there are none.
func worstAspectRatio(items []RowItem) float64 {
	if len(items) == 0 {
		return math.Inf(1)
	}
	worst := 0.0
	for _, it := range items {
		worst = max(worst, it.Rect.AspectRatio())
	}
	return worst
}
