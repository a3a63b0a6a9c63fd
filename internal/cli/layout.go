package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layout documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout <tree_file> <key>",
		Short: "Compute the treemap layout of a tree",
		Long: `Compute the treemap layout of a tree.

The output is a layout document (JSON, same format as '-o out.json') that
can be rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			return c.runLayout(cmd.Context(), args[0], args[1], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<key>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerLayout(cmd)

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, key string, opts pipeline.Options, output string, noCache bool) error {
	t, err := pipeline.LoadTree(input, key)
	if err != nil {
		return fmt.Errorf("load %s [%s]: %w", input, key, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, key, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("lay out %s [%s]: %w", input, key, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + "." + key + ".layout.json"
	}

	if err := layout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Rectangles), len(l.ColorCodes()), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
