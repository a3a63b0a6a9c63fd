package tree

import (
	"slices"
	"testing"
)

func TestComputePaths(t *testing.T) {
	root := sampleTree()
	ComputePaths(root)

	if root.Path == nil || len(root.Path) != 0 {
		t.Errorf("root path = %#v, want empty non-nil slice", root.Path)
	}

	want := map[string][]string{
		"a":   {"root"},
		"a1":  {"root", "a"},
		"a2":  {"root", "a"},
		"b":   {"root"},
		"c":   {"root"},
		"c1":  {"root", "c"},
		"c11": {"root", "c", "c1"},
	}
	for key, path := range want {
		n := find(root, key)
		if !slices.Equal(n.Path, path) {
			t.Errorf("%s.Path = %v, want %v", key, n.Path, path)
		}
	}
}

func TestComputePathsParentRelation(t *testing.T) {
	root := sampleTree()
	ComputePaths(root)

	var check func(p *Tree)
	check = func(p *Tree) {
		for _, c := range p.Children() {
			want := append(slices.Clone(p.Path), p.Key)
			if !slices.Equal(c.Path, want) {
				t.Errorf("%s.Path = %v, want %v", c.Key, c.Path, want)
			}
			check(c)
		}
	}
	check(root)
}

func TestComputePathsIdempotent(t *testing.T) {
	root := sampleTree()
	ComputePaths(root)
	first := find(root, "c11").Path

	ComputePaths(root)
	if got := find(root, "c11").Path; !slices.Equal(got, first) {
		t.Errorf("second run path = %v, want %v", got, first)
	}
}

func TestComputePathsWithPrefix(t *testing.T) {
	sub := New("a").AddChild(NewLeaf("a1", 1))
	prefix := []string{"root"}
	ComputePathsWithPrefix(sub, prefix)

	if !slices.Equal(sub.Path, []string{"root"}) {
		t.Errorf("sub.Path = %v", sub.Path)
	}
	if got := find(sub, "a1").Path; !slices.Equal(got, []string{"root", "a"}) {
		t.Errorf("a1.Path = %v", got)
	}

	prefix[0] = "mutated"
	if sub.Path[0] != "root" {
		t.Error("assigned path must not alias the caller's prefix")
	}
}

func find(root *Tree, key string) *Tree {
	var found *Tree
	root.Walk(func(n *Tree, _ int) bool {
		if n.Key == key {
			found = n
			return false
		}
		return true
	})
	return found
}
