package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotspec/pkg/surface"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for plotspec.

Document arguments complete to .json, .yaml, .yml and .toml files, and
--format and --layout complete to their accepted values.

  $ source <(plotspec completion bash)
  $ plotspec completion zsh > "${fpath[1]}/_plotspec"
  $ plotspec completion fish > ~/.config/fish/completions/plotspec.fish
  PS> plotspec completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
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
}

// documentExtensions are the file extensions offered for document arguments.
var documentExtensions = []string{"json", "yaml", "yml", "toml"}

// completeDocument completes the single document argument of render and
// validate.
func completeDocument(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return documentExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes a comma-separated --format value, offering the
// formats not yet listed.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	listed := strings.Split(prefix, ",")

	var out []string
	for _, f := range surface.Formats() {
		if !slices.Contains(listed, f) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeLayouts completes --layout.
func completeLayouts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	layouts := []string{
		string(surface.LayoutConstrained) + "\taligned data areas",
		string(surface.LayoutTight) + "\tsmall uniform padding",
		string(surface.LayoutNone) + "\tno padding",
	}
	return layouts, cobra.ShellCompDirectiveNoFileComp
}
