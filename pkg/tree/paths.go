package tree

import "slices"

// ComputePaths assigns every node in t its ancestor path: the keys of the
// nodes from the root down to, but not including, the node itself. The root
// receives an empty path.
//
// Nodes are visited parent first and each Path is written exactly once per
// call. Running it again yields the same result.
func ComputePaths(t *Tree) {
	ComputePathsWithPrefix(t, nil)
}

// ComputePathsWithPrefix is [ComputePaths] with a caller-supplied prefix
// prepended to every path, for laying out a subtree in the context of its
// real ancestors.
func ComputePathsWithPrefix(t *Tree, prefix []string) {
	t.Path = append(make([]string, 0, len(prefix)), prefix...)
	if t.IsLeaf() {
		return
	}
	next := append(slices.Clone(prefix), t.Key)
	for _, c := range t.children {
		ComputePathsWithPrefix(c, next)
	}
}
