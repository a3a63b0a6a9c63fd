package pipeline

import (
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/tree"
)

// LoadTree reads the tree file at path and returns the tree named name.
func LoadTree(path, name string) (*tree.Tree, error) {
	if err := errors.ValidateTreeName(name); err != nil {
		return nil, err
	}
	c, err := io.ImportFile(path)
	if err != nil {
		return nil, err
	}
	return c.Get(name)
}
