// Package cli implements the treemap command-line interface.
//
// The root command lays out one tree of a tree file and either prints its
// rectangles, renders them to the terminal, or writes an image:
//
//	treemap birds.json birds            # terminal preview (or rectangles when piped)
//	treemap birds.json birds -o -       # RECTANGLE lines on stdout
//	treemap birds.json birds -o out.svg # svg, png, json or txt by extension
//
// # Commands
//
//   - keys: list the trees in a tree file
//   - layout: compute a layout document
//   - visualize: render a layout document
//   - serve: expose the trees over HTTP
//   - cache: manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports rectangles too small to label.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treemap"

	// stdoutPath selects standard output for -o.
	stdoutPath = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   optionFlags
	)

	root := &cobra.Command{
		Use:   "treemap <tree_file> <key>",
		Short: "Treemap lays out weighted trees as squarified treemaps",
		Long: `Treemap lays out a weighted tree as a squarified treemap: nested
rectangles whose areas are proportional to the leaf values.

The tree file maps names to trees; <key> selects one of them (see 'treemap keys').
Without -o the treemap is drawn in the terminal, or printed as RECTANGLE lines
when stdout is not a terminal. With -o - the rectangles are always printed;
any other path is rendered in the format given by its extension.`,
		Version:      buildinfo.Version,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			return c.runTreemap(cmd, args[0], args[1], output, noCache, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/treemap/config.toml)")

	root.Flags().StringVarP(&output, "output", "o", "", "output file, or - for rectangles on stdout")
	root.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerLayout(root)
	flags.registerRender(root)

	// Register all subcommands
	root.AddCommand(c.keysCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// runTreemap is the root command: load, lay out, and emit one tree.
func (c *CLI) runTreemap(cmd *cobra.Command, file, key, output string, noCache bool, opts pipeline.Options) error {
	ctx := cmd.Context()

	t, err := pipeline.LoadTree(file, key)
	if err != nil {
		return fmt.Errorf("load %s [%s]: %w", file, key, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	l, err := runner.Layout(ctx, key, t, opts)
	if err != nil {
		return fmt.Errorf("lay out %s [%s]: %w", file, key, err)
	}
	prog.done(fmt.Sprintf("Laid out %d rectangles", len(l.Rectangles)))

	out := cmd.OutOrStdout()
	switch {
	case output == stdoutPath, output == "" && !isTerminal(out):
		opts.Formats = []string{pipeline.FormatText}
	case output == "":
		cols, rows := terminalSize(out)
		_, err := io.WriteString(out, renderTerminal(l, cols, rows, opts))
		return err
	default:
		format, err := formatFromPath(output)
		if err != nil {
			return err
		}
		opts.Formats = []string{format}
	}

	artifacts, err := runner.Render(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	data := artifacts[opts.Formats[0]]

	if output == "" || output == stdoutPath {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	c.Logger.Info("saved", "path", output, "bytes", len(data))
	printSuccess("Treemap complete")
	printFile(output)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	if c.Config.Cache.TTL != "" {
		ttl, err := time.ParseDuration(c.Config.Cache.TTL)
		if err != nil {
			runner.Close()
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cache ttl %q", c.Config.Cache.TTL)
		}
		runner.TTL = ttl
	}
	return runner, nil
}

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case "", backendFile:
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case backendRedis:
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case backendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be file, redis or none)", cfg.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/treemap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory (~/.config/treemap/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// formatFromPath picks the output format from a file extension.
func formatFromPath(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer format from %q (use .svg, .png, .json or .txt)", path)
	}
	return format, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
