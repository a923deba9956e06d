package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/matsen/bookmarker/internal/display"
	"github.com/spf13/cobra"
)

// DefaultSearchLimit caps search results unless --limit says otherwise.
const DefaultSearchLimit = 20

var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", DefaultSearchLimit, "Maximum number of results (0 for no limit)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search bookmarks by key, name or path",
	Long: `Full-text search over bookmark keys, names and paths.

Each word matches as a prefix, and all words must match. Results are
ordered by use count. The search index is refreshed automatically when the
bookmarks file changed.

Examples:
  b search proj
  b search home src`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	st := mustOpenStore(sessionFrom(cmd))
	query := strings.Join(args, " ")

	results, err := st.Search(query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "Search failed: %v", err)
	}

	if jsonOutput {
		return outputJSON(newListResponse(results))
	}
	if len(results) == 0 {
		fmt.Printf("No bookmarks match '%s'\n", query)
		return nil
	}
	display.LongList(os.Stdout, results)
	return nil
}
