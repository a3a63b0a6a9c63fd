package treemap

import "github.com/matzehuels/treemap/pkg/errors"

// ColorPolicy derives a leaf's color code from its lineage: the keys of
// every node from the layout root down to and including the leaf. The slice
// is never empty and must not be retained.
type ColorPolicy func(lineage []string) ColorCode

// ColorByCategory colors every leaf by its depth-1 ancestor (the child of the
// root on the path to the leaf), so all leaves of a top-level category share a
// color. A root that is itself a leaf uses its own key.
func ColorByCategory(lineage []string) ColorCode {
	if len(lineage) == 1 {
		return ColorCode{lineage[0]}
	}
	return ColorCode{lineage[1]}
}

// ColorByPath colors every leaf by its full ancestor path, so only siblings
// share a color. A root leaf has no ancestors and gets the default code.
func ColorByPath(lineage []string) ColorCode {
	if len(lineage) <= 1 {
		return DefaultColorCode()
	}
	return append(ColorCode(nil), lineage[:len(lineage)-1]...)
}

// ColorByLeaf gives every leaf its own color group.
func ColorByLeaf(lineage []string) ColorCode {
	return ColorCode{lineage[len(lineage)-1]}
}

// Color policy names accepted by [ParseColorPolicy].
const (
	ColorCategory = "category"
	ColorPath     = "path"
	ColorLeaf     = "leaf"
)

var colorPolicies = map[string]ColorPolicy{
	ColorCategory: ColorByCategory,
	ColorPath:     ColorByPath,
	ColorLeaf:     ColorByLeaf,
}

// ParseColorPolicy returns the policy registered under name. An empty name
// selects [ColorByCategory].
func ParseColorPolicy(name string) (ColorPolicy, error) {
	if name == "" {
		return ColorByCategory, nil
	}
	p, ok := colorPolicies[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"invalid color policy: %q (must be one of: category, path, leaf)", name)
	}
	return p, nil
}
