package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treemap/pkg/tree"
)

// encodeNode converts t back into its [attributes, child...] list. Metadata
// fields never shadow key or value.
func encodeNode(t *tree.Tree) []any {
	attrs := make(map[string]any, len(t.Meta)+2)
	for k, v := range t.Meta {
		attrs[k] = v
	}
	attrs["key"] = t.Key
	if t.HasValue {
		attrs["value"] = t.Value
	} else {
		delete(attrs, "value")
	}

	out := make([]any, 0, 1+t.NumChildren())
	out = append(out, attrs)
	for _, c := range t.Children() {
		out = append(out, encodeNode(c))
	}
	return out
}

// MarshalTree returns the canonical JSON encoding of a single tree. Object
// keys are sorted, so equal trees always encode to equal bytes.
func MarshalTree(t *tree.Tree) ([]byte, error) {
	data, err := json.Marshal(encodeNode(t))
	if err != nil {
		return nil, fmt.Errorf("encode tree %q: %w", t.Key, err)
	}
	return data, nil
}

// WriteJSON encodes c as an indented tree file and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(c Collection, w io.Writer) error {
	out := make(map[string]any, len(c))
	for name, t := range c {
		out[name] = encodeNode(t)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes c to a JSON tree file at path.
func ExportFile(c Collection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
