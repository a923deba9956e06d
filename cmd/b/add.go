package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <key> <name> [path]",
	Short: "Add a bookmark",
	Long: `Add a bookmark for a directory.

The path is stored exactly as given. Without a path the current working
directory is used.

Examples:
  b add p Projects ~/code      # bookmark a path
  b add here "This dir"        # bookmark the current directory`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)
	key, name := args[0], args[1]

	path, err := bookmarkPath(args)
	if err != nil {
		exitWithError(ExitError, "Could not determine current directory: %v", err)
	}

	st := mustOpenStore(sess)
	b, err := st.Add(key, name, path)
	switch {
	case errors.Is(err, bookmark.ErrDuplicateKey):
		exitWithError(ExitError, "A bookmark with key '%s' already exists.", key)
	case err != nil:
		exitWithError(ExitError, "Error saving bookmark: %v", err)
	}

	if jsonOutput {
		return outputJSON(StatusResponse{Status: "added", Bookmark: &b})
	}
	fmt.Printf("Bookmark added: [%s]#%s\n", b.Key, b.Name)
	return nil
}

// bookmarkPath returns the literal path argument, or the working directory
// when it was omitted.
func bookmarkPath(args []string) (string, error) {
	if len(args) > 2 {
		return args[2], nil
	}
	return os.Getwd()
}
