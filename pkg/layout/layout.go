package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Layout is a computed treemap together with the inputs that produced it.
type Layout struct {
	Tree       string              `json:"tree"`
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	ColorBy    string              `json:"color_by,omitempty"`
	Rectangles []treemap.Rectangle `json:"rectangles"`
}

// TotalArea returns the summed area of all rectangles. For a valid layout it
// equals Width × Height up to floating-point error.
func (l Layout) TotalArea() float64 {
	var a float64
	for _, r := range l.Rectangles {
		a += r.Area()
	}
	return a
}

// ColorCodes returns the distinct color codes of the layout, sorted
// lexicographically element by element.
func (l Layout) ColorCodes() []treemap.ColorCode {
	seen := make(map[string]bool)
	var codes []treemap.ColorCode
	for _, r := range l.Rectangles {
		c := r.ColorCode()
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		codes = append(codes, c)
	}
	slices.SortFunc(codes, func(a, b treemap.ColorCode) int { return slices.Compare(a, b) })
	return codes
}

// Marshal serializes a Layout to pretty-printed JSON.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal decodes and validates a Layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		if errors.GetCode(err) != "" {
			return Layout{}, err
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := errors.ValidateDimension("width", l.Width); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateDimension("height", l.Height); err != nil {
		return Layout{}, err
	}
	if len(l.Rectangles) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must contain rectangles")
	}
	return l, nil
}

// Read decodes a Layout from r.
func Read(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return Unmarshal(data)
}

// Write encodes l to w.
func Write(l Layout, w io.Writer) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile writes l to a JSON file at path.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
