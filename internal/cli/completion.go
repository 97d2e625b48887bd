package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/asset"
	"github.com/matzehuels/canvasbench/pkg/backend/all"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for canvasbench.

To load completions:

Bash:
  $ source <(canvasbench completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ canvasbench completion bash > /etc/bash_completion.d/canvasbench
  # macOS:
  $ canvasbench completion bash > $(brew --prefix)/etc/bash_completion.d/canvasbench

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ canvasbench completion zsh > "${fpath[1]}/_canvasbench"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ canvasbench completion fish | source

  # To load completions for each session, execute once:
  $ canvasbench completion fish > ~/.config/fish/completions/canvasbench.fish

PowerShell:
  PS> canvasbench completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> canvasbench completion powershell > canvasbench.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerSceneCompletions completes the enumerated scene flags of cmd.
func registerSceneCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}
	kinds := make([]string, len(scene.Kinds))
	for i, k := range scene.Kinds {
		kinds[i] = string(k)
	}
	_ = cmd.RegisterFlagCompletionFunc("kind", fixed(kinds...))
	_ = cmd.RegisterFlagCompletionFunc("mode", fixed(string(grid.ModeFlat), string(grid.ModePaged)))
	_ = cmd.RegisterFlagCompletionFunc("icon", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return asset.BuiltinNames(), cobra.ShellCompDirectiveDefault
	})
	if cmd.Flags().Lookup("backend") != nil {
		_ = cmd.RegisterFlagCompletionFunc("backend", fixed(all.Registry().Names()...))
	}
}
