package main

import (
	"errors"
	"fmt"

	"github.com/matsen/bookmarker/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values in <config-dir>/bookmarker/config.yml.

Usage:
  b config                      # Show all config and resolved paths
  b config top-count            # Get specific value
  b config top-count 8          # Set value
  b config store-path ~/sync/bookmarks.json

Keys:
  store-path     Bookmarks file (overridden by --store and BOOKMARKER_STORE)
  top-count      Bookmarks shown by all-top and the chooser (default 5)
  wrap-width     Column width for 'b all'; 0 detects the terminal (default 0)
  copy-on-quick  Also copy the path to the clipboard on 'b quick' (default false)`,
	Args:      cobra.MaximumNArgs(2),
	ValidArgs: config.Keys,
	RunE:      runConfig,
}

// ConfigResponse is the JSON output of b config without arguments.
type ConfigResponse struct {
	ConfigPath  string `json:"config_path"`
	StoreFile   string `json:"store_file"`
	StorePath   string `json:"store_path,omitempty"`
	TopCount    int    `json:"top_count"`
	WrapWidth   int    `json:"wrap_width"`
	CopyOnQuick bool   `json:"copy_on_quick"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)
	cfg := sess.cfg

	// No args: show all config
	if len(args) == 0 {
		if jsonOutput {
			return outputJSON(ConfigResponse{
				ConfigPath:  sess.configPath,
				StoreFile:   sess.storePath,
				StorePath:   cfg.StorePath,
				TopCount:    cfg.TopCount,
				WrapWidth:   cfg.WrapWidth,
				CopyOnQuick: cfg.CopyOnQuick,
			})
		}
		fmt.Printf("config file:    %s\n", sess.configPath)
		fmt.Printf("bookmarks file: %s\n", sess.storePath)
		for _, key := range config.Keys {
			value, _ := cfg.Get(key)
			fmt.Printf("%-15s %s\n", key+":", value)
		}
		return nil
	}

	key := config.NormalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if jsonOutput {
			return outputJSON(map[string]string{key: value})
		}
		fmt.Println(value)
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := cfg.Set(key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			exitWithError(ExitError, "%v (valid: %v)", err, config.Keys)
		}
		exitWithError(ExitError, "%v", err)
	}

	if sess.configPath == "" {
		exitWithError(ExitError, "%v", config.ErrConfigDirUnavailable)
	}
	if err := cfg.Save(sess.configPath); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if jsonOutput {
		return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	fmt.Printf("Updated %s to %s\n", key, value)
	return nil
}
