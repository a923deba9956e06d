package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexForce bool

func init() {
	indexRebuildCmd.Flags().BoolVarP(&indexForce, "force", "f", false, "Rebuild even if the index looks current")
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the search index",
	Long: `The search index is a SQLite database next to the bookmarks file.
It is derived data: deleting it loses nothing, it is rebuilt on demand.`,
}

// IndexRebuildResult is the JSON output for b index rebuild.
type IndexRebuildResult struct {
	Status  string `json:"status"`
	Indexed int    `json:"indexed"`
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from the bookmarks file",
	Args:  cobra.NoArgs,
	RunE:  runIndexRebuild,
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	st := mustOpenStore(sessionFrom(cmd))

	n, err := st.Reindex(indexForce)
	if err != nil {
		exitWithError(ExitError, "Rebuilding index: %v", err)
	}

	status := "rebuilt"
	if n < 0 {
		status = "current"
		n = st.Len()
	}

	if jsonOutput {
		return outputJSON(IndexRebuildResult{Status: status, Indexed: n})
	}
	if status == "current" {
		fmt.Printf("Index is current (%d bookmarks)\n", n)
	} else {
		fmt.Printf("Indexed %d bookmarks\n", n)
	}
	return nil
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the bookmarks file and index state",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	st := mustOpenStore(sessionFrom(cmd))
	info := st.Info()

	if jsonOutput {
		return outputJSON(info)
	}

	fmt.Printf("Bookmarks:  %s (%d records, %d bytes, %d total uses)\n",
		info.Path, info.Records, info.FileSize, info.TotalUses)
	fmt.Printf("Index:      %s (%d records, %d bytes)\n", info.IndexPath, info.Indexed, info.IndexSize)
	if info.LastSync.IsZero() {
		fmt.Println("Last sync:  never")
	} else {
		fmt.Printf("Last sync:  %s\n", info.LastSync.Local().Format(time.DateTime))
	}
	fmt.Printf("In sync:    %v\n", info.InSync)
	if info.Error != "" {
		fmt.Printf("Error:      %s\n", info.Error)
	}
	return nil
}
