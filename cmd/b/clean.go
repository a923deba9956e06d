package main

import (
	"fmt"

	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/spf13/cobra"
)

var cleanDryRun bool

func init() {
	cleanCmd.Flags().BoolVarP(&cleanDryRun, "dry-run", "n", false, "Only report bookmarks that would be removed")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all unreachable bookmarks",
	Long:  `Remove every bookmark whose path no longer exists on disk.`,
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

// CleanResult is the JSON output for b clean.
type CleanResult struct {
	Removed []bookmark.Bookmark `json:"removed"`
	Count   int                 `json:"count"`
	DryRun  bool                `json:"dry_run"`
}

func runClean(cmd *cobra.Command, args []string) error {
	st := mustOpenStore(sessionFrom(cmd))

	if st.Len() == 0 {
		if jsonOutput {
			return outputJSON(CleanResult{Removed: []bookmark.Bookmark{}, DryRun: cleanDryRun})
		}
		fmt.Println("No bookmarks to clean.")
		return nil
	}

	var removed []bookmark.Bookmark
	if cleanDryRun {
		removed = st.Stale(bookmark.PathExists)
	} else {
		var err error
		removed, err = st.Clean(bookmark.PathExists)
		if err != nil {
			exitWithError(ExitError, "Failed to save cleaned bookmarks: %v", err)
		}
	}

	if jsonOutput {
		if removed == nil {
			removed = []bookmark.Bookmark{}
		}
		return outputJSON(CleanResult{Removed: removed, Count: len(removed), DryRun: cleanDryRun})
	}

	verb := "Removed"
	if cleanDryRun {
		verb = "Would remove"
	}
	for _, b := range removed {
		fmt.Printf("%s: %s - missing path '%s'\n", verb, b.Label(), b.Path)
	}

	switch {
	case len(removed) == 0:
		fmt.Println("All bookmarks are valid. Nothing to clean.")
	case cleanDryRun:
		fmt.Printf("Would clean %d invalid bookmark(s).\n", len(removed))
	default:
		fmt.Printf("Cleaned %d invalid bookmark(s).\n", len(removed))
	}
	return nil
}
