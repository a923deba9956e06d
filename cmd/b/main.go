// Package main provides the b CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matsen/bookmarker/internal/config"
	"github.com/matsen/bookmarker/internal/logging"
	"github.com/matsen/bookmarker/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Persistent flag values
var (
	storeFlag   string
	verboseFlag bool
	jsonOutput  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "b",
	Short: "Navigate using bookmarks",
	Long: `b keeps short keys for directories you visit often.

Run without a command to see your most used bookmarks and pick one by key.
The chosen path is printed on stdout, so a shell function can cd into it:

  eval "$(b shell-init bash)"

Bookmarks are stored as JSON in <config-dir>/bookmarker/bookmarks.json.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupSession,
	RunE:              runChoose,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Bookmarks file (default <config-dir>/bookmarker/bookmarks.json)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output instead of human-readable text")
	rootCmd.Version = Version
}

// session carries what every command needs, resolved once at startup.
type session struct {
	cfg        *config.GlobalConfig
	configPath string // empty when there is no config directory
	storePath  string
}

type sessionKey struct{}

// setupSession loads .env and the global config and resolves the store path.
// Without a config directory the defaults apply; that is only fatal when
// nothing else says where the store is.
func setupSession(cmd *cobra.Command, args []string) error {
	envFile := config.LoadEnv()
	logging.SetDebug(verboseFlag || config.DebugEnabled())
	if envFile != "" {
		logging.Debugf("loaded %s", envFile)
	}

	if skipsSession(cmd) {
		return nil
	}

	configPath, err := config.GlobalConfigPath()
	if err != nil {
		logging.Debugf("no global config: %v", err)
		configPath = ""
	}
	cfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	storePath, err := config.ResolveStorePath(storeFlag, cfg)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	logging.Debugf("using store %s", storePath)

	s := &session{cfg: cfg, configPath: configPath, storePath: storePath}
	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
	return nil
}

// skipsSession reports commands that never touch the store or config.
func skipsSession(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "shell-init", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// sessionFrom returns the session stored by setupSession.
func sessionFrom(cmd *cobra.Command) *session {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok {
		exitWithError(ExitError, "internal error: no session for %s", cmd.Name())
	}
	return s
}

// mustOpenStore loads the bookmark collection, exits on error.
func mustOpenStore(s *session) *store.Store {
	st, err := store.Open(s.storePath)
	if err != nil {
		exitWithError(ExitError, "Error reading bookmarks: %v", err)
	}
	return st
}
