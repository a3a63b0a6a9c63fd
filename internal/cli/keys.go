package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/tree"
)

// keysCommand lists the trees of a tree file.
func (c *CLI) keysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <tree_file>",
		Short: "List the trees in a tree file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := io.ImportFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), keysTable(coll))
			return err
		},
	}
}

// keysTable summarizes each tree: node and leaf counts and total value.
// Trees that cannot be aggregated show the error instead of a total.
func keysTable(coll io.Collection) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("KEY", "NODES", "LEAVES", "TOTAL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	for _, name := range coll.Names() {
		t := coll[name]
		total := "-"
		if v, err := tree.ComputeInternalValues(t.Clone()); err == nil {
			total = strconv.FormatFloat(v, 'g', -1, 64)
		}
		tbl.Row(name, strconv.Itoa(t.Len()), strconv.Itoa(len(t.Leaves())), total)
	}
	return tbl.Render()
}
