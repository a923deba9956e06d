package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/matsen/bookmarker/internal/config"
	"github.com/matsen/bookmarker/internal/logging"
	"github.com/matsen/bookmarker/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(completionCmd)
}

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate shell completion scripts",
	Long: `Print a completion script for bash, zsh, fish or powershell.

Commands that take a key (quick, remove) complete from your bookmarks,
showing each bookmark's name next to its key.

Load it for the current session:
  source <(b completion bash)
  b completion fish | source

Or install it once, for example:
  b completion zsh > "${fpath[1]}/_b"

Combine with 'b shell-init' so the completed command also changes directory.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCompletion(cmd.OutOrStdout(), args[0])
	},
}

// writeCompletion writes the completion script for shell.
func writeCompletion(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}

// completeKeys offers bookmark keys starting with toComplete, described by
// their names. Completion runs without setupSession, so the store path is
// resolved here.
func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	st, err := openStoreForCompletion()
	if err != nil {
		logging.Errorf("completing keys: %v", err)
		return nil, cobra.ShellCompDirectiveError
	}

	var completions []string
	for _, b := range st.Bookmarks() {
		if strings.HasPrefix(b.Key, toComplete) {
			completions = append(completions, b.Key+"\t"+b.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func openStoreForCompletion() (*store.Store, error) {
	var cfg *config.GlobalConfig
	if configPath, err := config.GlobalConfigPath(); err == nil {
		cfg, _ = config.LoadGlobalConfig(configPath)
	}
	storePath, err := config.ResolveStorePath(storeFlag, cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(storePath)
}
