package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/layout"
)

const treesFile = "testdata/trees.json"

// runCLI executes the root command with args in an isolated environment and
// returns the command output and the status output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var status bytes.Buffer
	old := stdout
	stdout = &status
	t.Cleanup(func() { stdout = old })

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), status.String(), err
}

func TestRootPrintsRectangles(t *testing.T) {
	for _, args := range [][]string{
		{treesFile, "birds", "-o", "-"},
		{treesFile, "birds"}, // stdout is not a terminal
	} {
		out, _, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 3 {
			t.Fatalf("%v: got %d lines:\n%s", args, len(lines), out)
		}
		for _, want := range []string{
			"RECTANGLE 0.0000 0.0000 0.7755 0.5526 song sparrow",
			"RECTANGLE 0.0000 0.5526 0.7755 0.4474 junco",
			"RECTANGLE 0.7755 0.0000 0.2245 1.0000 mallard",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("%v: output lacks %q:\n%s", args, want, out)
			}
		}
	}
}

func TestRootWritesImage(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file   string
		prefix string
	}{
		{"birds.svg", "<svg"},
		{"birds.png", "\x89PNG"},
		{"birds.json", "{"},
		{"birds.txt", "RECTANGLE"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			_, status, err := runCLI(t, treesFile, "birds", "-o", path, "--legend")
			if err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(data), tt.prefix) {
				t.Errorf("%s starts with %q", tt.file, data[:min(len(data), 16)])
			}
			if !strings.Contains(status, path) {
				t.Errorf("status output lacks path: %q", status)
			}
		})
	}
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown key", []string{treesFile, "fish"}, errors.ErrCodeNotFound},
		{"missing file", []string{"testdata/nope.json", "birds"}, errors.ErrCodeFileNotFound},
		{"zero total", []string{treesFile, "empty", "-o", "-"}, errors.ErrCodeDegenerateInput},
		{"unknown extension", []string{treesFile, "birds", "-o", "birds.gif"}, errors.ErrCodeInvalidFormat},
		{"bad color policy", []string{treesFile, "birds", "--color-by", "rainbow"}, errors.ErrCodeInvalidInput},
		{"bad width", []string{treesFile, "birds", "--width=-1"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRootErrorNamesFileAndKey(t *testing.T) {
	_, _, err := runCLI(t, treesFile, "empty", "-o", "-")
	if err == nil || !strings.Contains(err.Error(), treesFile) || !strings.Contains(err.Error(), "[empty]") {
		t.Errorf("error = %v, want file and key context", err)
	}
}

func TestKeysCommand(t *testing.T) {
	out, _, err := runCLI(t, "keys", treesFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"birds", "empty", "49", "KEY"} {
		if !strings.Contains(out, want) {
			t.Errorf("keys output lacks %q:\n%s", want, out)
		}
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "birds.layout.json")

	if _, _, err := runCLI(t, "layout", treesFile, "birds", "-o", layoutPath, "--width", "6", "--height", "4"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := layout.ReadFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if l.Tree != "birds" || l.Width != 6 || l.Height != 4 || len(l.Rectangles) != 3 {
		t.Errorf("layout = %q %vx%v with %d rectangles", l.Tree, l.Width, l.Height, len(l.Rectangles))
	}

	if _, _, err := runCLI(t, "visualize", layoutPath, "-f", "svg,txt"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	for _, ext := range []string{".svg", ".txt"} {
		path := filepath.Join(dir, "birds.layout"+ext)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}

	if _, _, err := runCLI(t, "visualize", layoutPath, "-f", "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("visualize gif error = %v, want INVALID_FORMAT", err)
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[layout]\nwidth = 2.0\ncolor_by = \"leaf\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	tests := []struct {
		name      string
		extra     []string
		wantWidth float64
		wantColor string
	}{
		{"config values", nil, 2, "leaf"},
		{"flags override config", []string{"--width", "3", "--color-by", "path"}, 3, "path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			args := append([]string{"--config", cfg, "layout", treesFile, "birds", "-o", path, "--no-cache"}, tt.extra...)
			if _, _, err := runCLI(t, args...); err != nil {
				t.Fatal(err)
			}
			l, err := layout.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if l.Width != tt.wantWidth || l.ColorBy != tt.wantColor {
				t.Errorf("got width %v color_by %q, want %v %q", l.Width, l.ColorBy, tt.wantWidth, tt.wantColor)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	if _, _, err := runCLI(t, treesFile, "birds", "-o", "-"); err != nil {
		t.Fatal(err)
	}
	_, status, err := runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status, "Cache cleared") {
		t.Errorf("status = %q", status)
	}

	out, _, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		args     []string
		contains string
	}{
		{[]string{"completion", "bash"}, "__start_treemap"},
		{[]string{"completion", "zsh"}, "#compdef treemap"},
		{[]string{"completion", "fish"}, "complete -c treemap"},
		{[]string{"__complete", "--color-by", ""}, "category\npath\nleaf\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output lacks %q:\n%.300s", tt.contains, out)
			}
		})
	}

	if _, _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
