package main

import (
	"fmt"
	"os"

	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all bookmarks to stdout",
	Long: `Write the whole collection to stdout in insertion order.

Examples:
  b export > backup.json
  b export --format yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	st := mustOpenStore(sessionFrom(cmd))

	bookmarks := st.Bookmarks()
	switch exportFormat {
	case "json":
		return outputJSON(bookmarks)
	case "yaml", "yml":
		return exportYAML(bookmarks)
	default:
		exitWithError(ExitError, "unknown export format: %s (valid: json, yaml)", exportFormat)
	}
	return nil
}

func exportYAML(bookmarks []bookmark.Bookmark) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(bookmarks); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
