package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/matsen/bookmarker/internal/clipboard"
	"github.com/matsen/bookmarker/internal/store"
	"github.com/spf13/cobra"
)

var quickCopyFlag bool

func init() {
	quickCmd.Flags().BoolVar(&quickCopyFlag, "copy", false, "Also copy the path to the system clipboard")
	rootCmd.AddCommand(quickCmd)
}

var quickCmd = &cobra.Command{
	Use:   "quick <key>",
	Short: "Print a bookmark's path and count the visit",
	Long: `Print the path of the bookmark with the given key and increase its
use count. Meant for a shell wrapper that cds into the output:

  cd "$(b quick p)"`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKeys,
	RunE:              runQuick,
}

func runQuick(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)
	st := mustOpenStore(sess)

	b := mustTouch(st, args[0])
	fmt.Println(b.Path)

	if quickCopyFlag || sess.cfg.CopyOnQuick {
		copyPath(b.Path)
	}
	return nil
}

// mustTouch records a visit to key, exits on error.
func mustTouch(st *store.Store, key string) bookmark.Bookmark {
	b, err := st.Touch(key)
	if errors.Is(err, bookmark.ErrNotFound) {
		exitWithError(ExitNotFound, "No bookmark found for key '%s'", key)
	}
	if err != nil {
		exitWithError(ExitError, "Could not update usage count: %v", err)
	}
	return b
}

// copyPath puts path on the clipboard, warning on stderr if that fails.
func copyPath(path string) {
	if err := clipboard.Copy(path); err != nil {
		if errors.Is(err, clipboard.ErrClipboardUnavailable) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", clipboard.UnavailableHint)
			return
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Copied to clipboard")
}
