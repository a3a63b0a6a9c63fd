package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Collection is a set of named trees loaded from one file.
type Collection map[string]*tree.Tree

// Names returns the tree names in sorted order.
func (c Collection) Names() []string {
	return slices.Sorted(maps.Keys(c))
}

// Get returns the tree stored under name, or a NOT_FOUND error listing the
// available names.
func (c Collection) Get(name string) (*tree.Tree, error) {
	if t, ok := c[name]; ok {
		return t, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound,
		"no tree named %q (available: %s)", name, strings.Join(c.Names(), ", "))
}

// record is the attribute record at the head of every node list.
type record struct {
	Key   string         `mapstructure:"key"`
	Value *float64       `mapstructure:"value"`
	Extra map[string]any `mapstructure:",remain"`
}

// ReadJSON decodes a tree file from r. Comments and trailing commas are
// permitted.
func ReadJSON(r io.Reader) (Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON tree file")
	}
	return fromRaw(raw)
}

// ReadYAML decodes a tree file from r.
func ReadYAML(r io.Reader) (Collection, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Collection{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML tree file")
	}
	return fromRaw(raw)
}

// ImportFile reads the tree file at path, choosing the decoder from the file
// extension.
func ImportFile(path string) (Collection, error) {
	var read func(io.Reader) (Collection, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		read = ReadJSON
	case ".yaml", ".yml":
		read = ReadYAML
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported tree file extension %q (want .json, .jsonc, .yaml or .yml)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func fromRaw(raw map[string]any) (Collection, error) {
	c := make(Collection, len(raw))
	for name, v := range raw {
		t, err := decodeNode(v, name)
		if err != nil {
			return nil, err
		}
		c[name] = t
	}
	return c, nil
}

// decodeNode converts one [attributes, child...] list into a tree. where
// describes the node's position for error messages.
func decodeNode(v any, where string) (*tree.Tree, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedTree,
			"%s: expected a non-empty list [attributes, child...], got %T", where, v)
	}
	attrs, ok := list[0].(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedTree,
			"%s: first element must be an attribute record, got %T", where, list[0])
	}

	var rec record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build attribute decoder")
	}
	if err := dec.Decode(attrs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedTree, err, "%s: bad attribute record", where)
	}
	if _, ok := attrs["key"]; !ok {
		return nil, errors.New(errors.ErrCodeMalformedTree, "%s: attribute record has no key", where)
	}

	t := tree.New(rec.Key)
	if rec.Value != nil {
		t.SetValue(*rec.Value)
	}
	if len(rec.Extra) > 0 {
		t.Meta = tree.Metadata(rec.Extra)
	}

	for i, child := range list[1:] {
		c, err := decodeNode(child, fmt.Sprintf("%s > %s[%d]", where, rec.Key, i))
		if err != nil {
			return nil, err
		}
		t.AddChild(c)
	}
	if t.IsLeaf() && !t.HasValue {
		return nil, errors.New(errors.ErrCodeMalformedTree, "%s: leaf %q has no value", where, rec.Key)
	}
	return t, nil
}
