package cmd

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for celestial.

To load completions:

Bash:
  $ source <(celestial completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ celestial completion bash > /etc/bash_completion.d/celestial
  # macOS:
  $ celestial completion bash > $(brew --prefix)/etc/bash_completion.d/celestial

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ celestial completion zsh > "${fpath[1]}/_celestial"

Fish:
  $ celestial completion fish > ~/.config/fish/completions/celestial.fish

PowerShell:
  PS> celestial completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(a.stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(a.stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(a.stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(a.stdout)
			}
			return nil
		},
	}
}
