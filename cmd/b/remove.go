package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:               "remove <key>",
	Aliases:           []string{"rm"},
	Short:             "Remove a bookmark",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKeys,
	RunE:              runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	key := args[0]
	st := mustOpenStore(sessionFrom(cmd))

	removed, err := st.Remove(key)
	if err != nil {
		exitWithError(ExitError, "Error saving bookmarks: %v", err)
	}

	if jsonOutput {
		status := "deleted"
		if removed == 0 {
			status = "not_found"
		}
		return outputJSON(StatusResponse{Status: status, Key: key, Count: removed})
	}

	if removed > 0 {
		fmt.Printf("Bookmark with key '%s' deleted\n", key)
	} else {
		fmt.Printf("No bookmarks found with key '%s'\n", key)
	}
	return nil
}
