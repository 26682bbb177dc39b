package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewCompletionCommand creates the completion command for shell completions
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for tdexplorer.

To load completions:

Bash:

  $ source <(tdexplorer completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tdexplorer completion bash > /etc/bash_completion.d/tdexplorer
  # macOS:
  $ tdexplorer completion bash > $(brew --prefix)/etc/bash_completion.d/tdexplorer

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tdexplorer completion zsh > "${fpath[1]}/_tdexplorer"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ tdexplorer completion fish | source

  # To load completions for each session, execute once:
  $ tdexplorer completion fish > ~/.config/fish/completions/tdexplorer.fish

PowerShell:

  PS> tdexplorer completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> tdexplorer completion powershell > tdexplorer.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeFrom adapts a candidate source to cobra's dynamic completion.
// Candidates come from the catalogue named by --config; completion stays
// silent when it cannot be loaded.
func completeFrom(opts *rootOptions, candidates func(*app, []string) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := opts.open(cmd.Context(), false)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer a.Close()

		var out []string
		for _, c := range candidates(a, args) {
			if strings.HasPrefix(c, toComplete) {
				out = append(out, c)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
