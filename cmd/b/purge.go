package main

import (
	"fmt"

	"github.com/matsen/bookmarker/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(purgeCmd)
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all bookmarks (delete the file)",
	Long: `Delete the bookmarks file and its search index.

There is no backup and no confirmation.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func runPurge(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)

	removed, err := store.Purge(sess.storePath)
	if err != nil {
		exitWithError(ExitError, "Failed to delete bookmark file: %v", err)
	}

	if jsonOutput {
		status := "purged"
		if !removed {
			status = "nothing_to_purge"
		}
		return outputJSON(StatusResponse{Status: status})
	}

	if removed {
		fmt.Println("All bookmarks deleted. (:")
	} else {
		fmt.Println("No bookmark file found - nothing to purge. ):")
	}
	return nil
}
