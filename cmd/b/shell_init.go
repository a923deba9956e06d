package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shellInitCmd)
}

var shellInitCmd = &cobra.Command{
	Use:   "shell-init [bash|zsh|fish]",
	Short: "Print a shell function that cds into chosen bookmarks",
	Long: `Print a shell function named b that wraps this program.

Running b with no command or with quick changes the current shell's
directory to the chosen bookmark; everything else passes through.

Bash / Zsh (add to ~/.bashrc or ~/.zshrc):
  eval "$(command b shell-init bash)"

Fish (add to ~/.config/fish/config.fish):
  command b shell-init fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := shellInitScript(args[0])
		if err != nil {
			return err
		}
		fmt.Print(script)
		return nil
	},
}

const posixShellInit = `b() {
  case "$1" in
    ""|quick)
      local target
      target="$(command b "$@")" || return $?
      if [ -d "$target" ]; then
        cd -- "$target"
      elif [ -n "$target" ]; then
        printf '%s\n' "$target"
      fi
      ;;
    *)
      command b "$@"
      ;;
  esac
}
`

const fishShellInit = `function b
    if test (count $argv) -eq 0; or test "$argv[1]" = quick
        set -l target (command b $argv); or return $status
        if test -d "$target"
            cd -- $target
        else if test -n "$target"
            printf '%s\n' $target
        end
    else
        command b $argv
    end
end
`

// shellInitScript returns the wrapper function for a shell.
func shellInitScript(shell string) (string, error) {
	switch shell {
	case "bash", "zsh":
		return posixShellInit, nil
	case "fish":
		return fishShellInit, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}
