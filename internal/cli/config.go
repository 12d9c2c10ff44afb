package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/colsplit/colsplit/pkg/errors"
)

// Config holds user-level defaults read from the colsplit config file.
// Every field has a working default; the file is optional and flags
// always take precedence over file values.
type Config struct {
	// Output is the default parent directory for split trees.
	Output string `toml:"output"`

	// TreeFormat is the default format for the tree command
	// (text, dot, svg or png).
	TreeFormat string `toml:"tree_format"`

	// CacheTTLHours is the lifetime of cached render artifacts in hours.
	CacheTTLHours int `toml:"cache_ttl_hours"`

	// Color enables styled terminal output. Off forces plain text.
	Color bool `toml:"color"`
}

// CacheTTL returns the configured cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

func defaultConfig() *Config {
	return &Config{
		Output:        ".",
		TreeFormat:    "text",
		CacheTTLHours: 7 * 24,
		Color:         true,
	}
}

// configPath returns the location of the config file,
// typically ~/.config/colsplit/colsplit.toml.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "resolve user config directory")
	}
	return filepath.Join(dir, "colsplit", "colsplit.toml"), nil
}

// loadConfig reads the config file and merges it over the defaults.
// A missing file is not an error; a malformed one is.
func loadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file %s", path)
	}

	if cfg.Output == "" {
		cfg.Output = "."
	}
	if cfg.TreeFormat == "" {
		cfg.TreeFormat = "text"
	}
	if cfg.CacheTTLHours <= 0 {
		cfg.CacheTTLHours = 7 * 24
	}

	return cfg, nil
}
