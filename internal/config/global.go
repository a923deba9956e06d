package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigFile is the config file name under Dir().
	GlobalConfigFile = "config.yml"
	// DefaultTopCount is how many bookmarks the top listing shows.
	DefaultTopCount = 5
)

// ErrUnknownKey is returned by Get and Set for keys that don't exist.
var ErrUnknownKey = errors.New("unknown configuration key")

// GlobalConfig represents configuration stored in <user-config-dir>/bookmarker/config.yml.
type GlobalConfig struct {
	StorePath   string `yaml:"store_path,omitempty"`    // Overrides the default store location
	TopCount    int    `yaml:"top_count,omitempty"`     // Entries shown by all-top and the chooser
	WrapWidth   int    `yaml:"wrap_width,omitempty"`    // 0 means detect from the terminal
	CopyOnQuick bool   `yaml:"copy_on_quick,omitempty"` // quick also copies the path
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, GlobalConfigFile), nil
}

// LoadGlobalConfig loads the global configuration file at path.
// Returns a default config (not an error) if the file doesn't exist.
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	cfg := &GlobalConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if cfg.StorePath != "" {
		cfg.StorePath = ExpandPath(cfg.StorePath)
	}
	if cfg.TopCount <= 0 {
		cfg.TopCount = DefaultTopCount
	}
	if cfg.WrapWidth < 0 {
		cfg.WrapWidth = 0
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *GlobalConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

// Keys accepted by Get and Set, in display order.
var Keys = []string{"store-path", "top-count", "wrap-width", "copy-on-quick"}

// NormalizeKey converts key formats (top-count, top_count, TOP_COUNT) to consistent format.
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}

// Get returns the value of a configuration key as text.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch NormalizeKey(key) {
	case "store-path":
		return c.StorePath, nil
	case "top-count":
		return strconv.Itoa(c.TopCount), nil
	case "wrap-width":
		return strconv.Itoa(c.WrapWidth), nil
	case "copy-on-quick":
		return strconv.FormatBool(c.CopyOnQuick), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses and validates value, then assigns it to key.
func (c *GlobalConfig) Set(key, value string) error {
	switch NormalizeKey(key) {
	case "store-path":
		c.StorePath = ExpandPath(value)
	case "top-count":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("top-count must be a positive integer: %q", value)
		}
		c.TopCount = n
	case "wrap-width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("wrap-width must be 0 (detect) or a positive integer: %q", value)
		}
		c.WrapWidth = n
	case "copy-on-quick":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy-on-quick must be true or false: %q", value)
		}
		c.CopyOnQuick = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}
