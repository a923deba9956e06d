package main

import (
	"os"

	"github.com/matsen/bookmarker/internal/display"
	"github.com/spf13/cobra"
)

var (
	allLongMatch string
	allTopCount  int
)

func init() {
	allLongCmd.Flags().StringVarP(&allLongMatch, "match", "m", "", "Only show bookmarks whose key or name matches a glob pattern")
	allTopCmd.Flags().IntVarP(&allTopCount, "count", "n", 0, "Number of bookmarks to show (default top_count from config, 5)")

	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(allLongCmd)
	rootCmd.AddCommand(allTopCmd)
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List all bookmarks (short format)",
	Long:  `List every bookmark as [key]name, wrapped to the terminal width.`,
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)
	st := mustOpenStore(sess)

	if jsonOutput {
		return outputJSON(newListResponse(st.Bookmarks()))
	}

	width := display.Width(int(os.Stdout.Fd()), sess.cfg.WrapWidth)
	display.ShortList(os.Stdout, st.Bookmarks(), width)
	return nil
}

var allLongCmd = &cobra.Command{
	Use:   "all-long",
	Short: "List all bookmarks (long format)",
	Long: `List every bookmark with its name, key, use count and path.

Examples:
  b all-long
  b all-long --match 'proj*'   # keys or names starting with proj`,
	Args: cobra.NoArgs,
	RunE: runAllLong,
}

func runAllLong(cmd *cobra.Command, args []string) error {
	st := mustOpenStore(sessionFrom(cmd))

	bookmarks := st.Bookmarks()
	if allLongMatch != "" {
		var err error
		bookmarks, err = st.Filter(allLongMatch)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if jsonOutput {
		return outputJSON(newListResponse(bookmarks))
	}
	display.LongList(os.Stdout, bookmarks)
	return nil
}

var allTopCmd = &cobra.Command{
	Use:   "all-top",
	Short: "List the most used bookmarks",
	Args:  cobra.NoArgs,
	RunE:  runAllTop,
}

func runAllTop(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)
	st := mustOpenStore(sess)

	n := topCount(sess, allTopCount)
	top := st.Top(n)

	if jsonOutput {
		return outputJSON(newListResponse(top))
	}
	if len(top) == 0 {
		outputEmptyStore()
		return nil
	}
	display.TopList(os.Stdout, top, n)
	return nil
}

// topCount returns the flag value when set, otherwise the configured count.
func topCount(sess *session, flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return sess.cfg.TopCount
}
