package layout

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
	"github.com/matzehuels/treemap/pkg/treemap"
)

func sample(t *testing.T) Layout {
	t.Helper()
	root := tree.New("root").
		AddChild(tree.New("x").
			AddChild(tree.NewLeaf("x1", 2)).
			AddChild(tree.NewLeaf("x2", 1))).
		AddChild(tree.NewLeaf("y", 3))
	rects, err := treemap.Layout(root, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	return Layout{Tree: "sample", Width: 2, Height: 1, ColorBy: treemap.ColorCategory, Rectangles: rects}
}

func TestRoundTrip(t *testing.T) {
	l := sample(t)

	var buf bytes.Buffer
	if err := Write(l, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Tree != l.Tree || got.Width != l.Width || got.Height != l.Height || got.ColorBy != l.ColorBy {
		t.Errorf("header mismatch: got %+v", got)
	}
	if len(got.Rectangles) != len(l.Rectangles) {
		t.Fatalf("got %d rectangles, want %d", len(got.Rectangles), len(l.Rectangles))
	}
	for i := range l.Rectangles {
		if !got.Rectangles[i].Equal(l.Rectangles[i]) {
			t.Errorf("rect %d: got %v, want %v", i, got.Rectangles[i], l.Rectangles[i])
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	l := sample(t)
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteFile(l, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rectangles) != 3 {
		t.Errorf("got %d rectangles, want 3", len(got.Rectangles))
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	rect := `{"x":0,"y":0,"width":1,"height":1,"label":"a","color_code":["a"]}`
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"syntax", `{`, errors.ErrCodeInvalidFormat},
		{"no rectangles", `{"tree":"t","width":1,"height":1,"rectangles":[]}`, errors.ErrCodeInvalidFormat},
		{"zero width", `{"tree":"t","width":0,"height":1,"rectangles":[` + rect + `]}`, errors.ErrCodeInvalidInput},
		{"negative rect", `{"tree":"t","width":1,"height":1,"rectangles":[{"x":-1,"y":0,"width":1,"height":1,"label":"a"}]}`, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("Unmarshal() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestTotalArea(t *testing.T) {
	l := sample(t)
	if got := l.TotalArea(); math.Abs(got-2) > 1e-9 {
		t.Errorf("TotalArea() = %v, want 2", got)
	}
}

func TestColorCodes(t *testing.T) {
	codes := sample(t).ColorCodes()
	var keys []string
	for _, c := range codes {
		keys = append(keys, c.String())
	}
	if got := strings.Join(keys, ","); got != "x,y" {
		t.Errorf("ColorCodes() = %s, want x,y", got)
	}
}
