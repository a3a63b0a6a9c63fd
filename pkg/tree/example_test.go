package tree_test

import (
	"fmt"

	"github.com/matzehuels/treemap/pkg/tree"
)

func ExampleComputeInternalValues() {
	root := tree.New("birds")
	root.AddChild(tree.New("finches").
		AddChild(tree.NewLeaf("house finch", 3)).
		AddChild(tree.NewLeaf("goldfinch", 2)))
	root.AddChild(tree.NewLeaf("wren", 1))

	total, err := tree.ComputeInternalValues(root)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(total)
	// Output: 6
}

func ExampleComputePaths() {
	root := tree.New("birds")
	finches := tree.New("finches")
	goldfinch := tree.NewLeaf("goldfinch", 2)
	root.AddChild(finches.AddChild(goldfinch))

	tree.ComputePaths(root)
	fmt.Println(len(root.Path), goldfinch.Path)
	// Output: 0 [birds finches]
}
