package cli

import (
	"github.com/spf13/cobra"
)

// shells maps each supported shell to its completion generator. Scripts are
// written to the command's output so they can be piped or captured.
var shells = map[string]func(root *cobra.Command, cmd *cobra.Command) error{
	"bash": func(root, cmd *cobra.Command) error {
		return root.GenBashCompletionV2(cmd.OutOrStdout(), true)
	},
	"zsh": func(root, cmd *cobra.Command) error {
		return root.GenZshCompletion(cmd.OutOrStdout())
	},
	"fish": func(root, cmd *cobra.Command) error {
		return root.GenFishCompletion(cmd.OutOrStdout(), true)
	},
	"powershell": func(root, cmd *cobra.Command) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	},
}

// completionCommand prints shell completion scripts for treemap.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion {bash|zsh|fish|powershell}",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for treemap.

Load it into the current shell:

  source <(treemap completion bash)
  treemap completion zsh > "${fpath[1]}/_treemap"
  treemap completion fish | source
  treemap completion powershell | Out-String | Invoke-Expression

Completions cover subcommands, flags and the --color-by policies.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shells[args[0]](cmd.Root(), cmd)
		},
	}
}
