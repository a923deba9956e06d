// Package config resolves where bookmarks live and loads user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppDir is the directory name under the user config directory.
	AppDir = "bookmarker"
	// StoreFile is the bookmark collection file name.
	StoreFile = "bookmarks.json"
	// IndexExt is the extension of the search index kept next to the store.
	IndexExt = ".db"

	// EnvStore overrides the store file location.
	EnvStore = "BOOKMARKER_STORE"
	// EnvDebug enables debug logging when set to a non-empty value.
	EnvDebug = "BOOKMARKER_DEBUG"
)

// ErrConfigDirUnavailable is returned when no per-user config directory can be determined.
var ErrConfigDirUnavailable = errors.New("could not find config directory")

// Dir returns <user-config-dir>/bookmarker.
// Respects XDG_CONFIG_HOME, then falls back to os.UserConfigDir.
func Dir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		var err error
		configHome, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrConfigDirUnavailable, err)
		}
	}
	return filepath.Join(configHome, AppDir), nil
}

// DefaultStorePath returns <user-config-dir>/bookmarker/bookmarks.json.
func DefaultStorePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StoreFile), nil
}

// IndexPath returns the search index path that belongs to a store file.
// bookmarks.json maps to bookmarks.db in the same directory.
func IndexPath(storePath string) string {
	ext := filepath.Ext(storePath)
	if ext == IndexExt {
		return storePath + IndexExt
	}
	return strings.TrimSuffix(storePath, ext) + IndexExt
}

// ResolveStorePath picks the store file location.
// Precedence: explicit flag, BOOKMARKER_STORE, store_path from the global
// config, then the default under the user config directory.
func ResolveStorePath(flagValue string, cfg *GlobalConfig) (string, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), nil
	}
	if env := os.Getenv(EnvStore); env != "" {
		return ExpandPath(env), nil
	}
	if cfg != nil && cfg.StorePath != "" {
		return cfg.StorePath, nil
	}
	return DefaultStorePath()
}

// EnvFile is the dotenv file read from Dir() at startup.
const EnvFile = ".env"

// LoadEnv loads <user-config-dir>/bookmarker/.env if one exists. Variables
// already set in the environment win. The working directory is never
// consulted, so changing into a project does not change the store.
// Returns the file that was loaded, or "" if none was.
func LoadEnv() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, EnvFile)
	if err := godotenv.Load(path); err != nil {
		return ""
	}
	return path
}

// DebugEnabled reports whether BOOKMARKER_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv(EnvDebug) != ""
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
