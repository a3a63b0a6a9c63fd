// Package treemap computes squarified treemap layouts.
//
// # Overview
//
// A treemap partitions a bounding rectangle into one rectangle per leaf of a
// weighted tree. Every leaf's area is proportional to its value, and the
// rectangles of a subtree exactly tile the rectangle assigned to the subtree's
// root, so the nesting mirrors the hierarchy.
//
// The layout is squarified: siblings are grouped into rows (or columns) chosen
// greedily so that the worst aspect ratio in each row stays as close to 1 as
// possible, instead of slicing every level into long thin strips.
//
// # Pipeline
//
// Layouts are computed in three passes over a [tree.Tree]:
//
//  1. [tree.ComputeInternalValues] sums leaf values up the tree.
//  2. [tree.ComputePaths] stamps every node with its ancestor keys.
//  3. [ComputeRectangles] recursively partitions the bounding box.
//
// [Layout] runs all three in order.
//
// # Building Blocks
//
// [ComputeRow] lays out a run of siblings as a single band against the left
// edge of a bounding rectangle (or the top edge, when the rectangle is taller
// than it is wide) and returns the leftover space. [ComputeRectangles] drives
// it with the greedy row grouping.
//
// # Colors
//
// Each leaf rectangle carries a [ColorCode] identifying the group it should be
// colored by. The grouping is chosen by a [ColorPolicy]; the default,
// [ColorByCategory], colors every leaf by its top-level category.
//
// # Degenerate Input
//
// Zero-valued nodes under a non-zero parent produce no rectangles. Laying out
// a node whose children sum to zero is an error with code DEGENERATE_INPUT,
// since no proportion can be computed.
package treemap
