package tree

import (
	"maps"
	"slices"
)

// Metadata stores arbitrary key-value pairs copied from the input record of a
// node. The layout never reads it; it exists so renderers and exporters can
// pass loader-supplied fields through.
type Metadata map[string]any

// Tree is a node of an ordered rose tree.
//
// Value is meaningful only when HasValue is set: leaves get it from the input,
// internal nodes from [ComputeInternalValues]. Path is nil until
// [ComputePaths] runs; afterwards the root holds an empty, non-nil slice.
//
// The zero value is an unkeyed, unvalued leaf. Tree is not safe for
// concurrent use.
type Tree struct {
	Key      string
	Value    float64
	HasValue bool
	Path     []string
	Meta     Metadata

	children []*Tree
}

// New creates a node without a preset value.
func New(key string) *Tree {
	return &Tree{Key: key}
}

// NewLeaf creates a node with a preset value.
func NewLeaf(key string, value float64) *Tree {
	return &Tree{Key: key, Value: value, HasValue: true}
}

// SetValue stores v as the node's value.
func (t *Tree) SetValue(v float64) {
	t.Value = v
	t.HasValue = true
}

// AddChild appends c to the node's children and returns t for chaining.
func (t *Tree) AddChild(c *Tree) *Tree {
	t.children = append(t.children, c)
	return t
}

// Children returns the node's children in insertion order. The returned slice
// is a copy; reordering it does not affect the tree.
func (t *Tree) Children() []*Tree {
	return slices.Clone(t.children)
}

// NumChildren returns the number of direct children.
func (t *Tree) NumChildren() int { return len(t.children) }

// IsLeaf reports whether the node has no children.
func (t *Tree) IsLeaf() bool { return len(t.children) == 0 }

// Walk calls fn for every node in pre-order, passing the node's depth (0 for
// t itself). Walking stops early if fn returns false.
func (t *Tree) Walk(fn func(n *Tree, depth int) bool) {
	t.walk(fn, 0)
}

func (t *Tree) walk(fn func(*Tree, int) bool, depth int) bool {
	if !fn(t, depth) {
		return false
	}
	for _, c := range t.children {
		if !c.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Len returns the number of nodes in the subtree rooted at t.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(*Tree, int) bool {
		n++
		return true
	})
	return n
}

// Leaves returns the leaves of t in pre-order.
func (t *Tree) Leaves() []*Tree {
	var out []*Tree
	t.Walk(func(n *Tree, _ int) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Child returns the direct child with the given key.
func (t *Tree) Child(key string) (*Tree, bool) {
	for _, c := range t.children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the subtree rooted at t. Metadata maps are
// copied shallowly.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		Key:      t.Key,
		Value:    t.Value,
		HasValue: t.HasValue,
		Path:     slices.Clone(t.Path),
		Meta:     maps.Clone(t.Meta),
	}
	if t.children != nil {
		c.children = make([]*Tree, len(t.children))
		for i, ch := range t.children {
			c.children[i] = ch.Clone()
		}
	}
	return c
}
