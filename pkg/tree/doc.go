// Package tree provides the ordered rose tree that treemap layouts are
// computed from.
//
// # Overview
//
// A [Tree] is a node with a key (unique among its siblings), a numeric value,
// an ordered list of children, and an optional metadata map holding whatever
// extra attributes the input file carried. A node is a leaf iff it has no
// children.
//
// Leaf values come from the input. Internal values and ancestor paths are
// derived by two explicit mutating passes that must run before layout:
//
//   - [ComputeInternalValues]: post-order; every internal node's Value
//     becomes the sum of its children. Requires every leaf to be valued.
//   - [ComputePaths]: pre-order; every node's Path becomes the keys of its
//     ancestors, root first. The root's path is empty.
//
// Both passes mutate the tree in place. A tree must not be shared between
// goroutines while a pass runs; use [Tree.Clone] to give each caller its own
// copy.
//
// # Basic Usage
//
//	root := tree.New("birds")
//	root.AddChild(tree.NewLeaf("sparrow", 3))
//	root.AddChild(tree.NewLeaf("finch", 1))
//
//	total, err := tree.ComputeInternalValues(root) // 4
//	tree.ComputePaths(root)                        // finch.Path == ["birds"]
package tree
