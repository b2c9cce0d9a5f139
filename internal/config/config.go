// Package config loads the doctags configuration: the registered
// documentation roots, the primary root, and tuning knobs for the
// generator. The set of known roots is injected configuration, never
// ambient global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the configuration file location.
	EnvConfigPath = "DOCTAGS_CONFIG"
	// EnvDBPath overrides the tag catalog database location.
	EnvDBPath = "DOCTAGS_DB_PATH"

	defaultDebounceMS = 500
)

// Config holds the doctags runtime configuration.
type Config struct {
	// Roots are the registered documentation roots, the set the "ALL"
	// sentinel expands to.
	Roots []string `yaml:"roots"`

	// PrimaryRoot is the default documentation root. Its index always
	// self-registers the help-tags entry. Defaults to the first root.
	PrimaryRoot string `yaml:"primary_root"`

	// Workers caps concurrent file extraction. Zero means NumCPU.
	Workers int `yaml:"workers"`

	// DBPath locates the tag catalog database. Empty selects
	// ~/.doctags/catalog.db.
	DBPath string `yaml:"db_path"`

	// WatchDebounceMS is the quiet period before watch mode regenerates
	// a changed root.
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{WatchDebounceMS: defaultDebounceMS}
}

// Load reads the configuration file at path. An empty path falls back to
// $DOCTAGS_CONFIG, then ~/.doctags/config.yaml. A missing file is not an
// error; defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".doctags", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Implicit locations may be absent.
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if dbPath := os.Getenv(EnvDBPath); dbPath != "" {
		cfg.DBPath = dbPath
	}
	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	if c.PrimaryRoot == "" && len(c.Roots) > 0 {
		c.PrimaryRoot = c.Roots[0]
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = defaultDebounceMS
	}
}

// WatchDebounce returns the watch-mode quiet period.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// DatabasePath resolves the tag catalog location, creating its parent
// directory when needed.
func (c *Config) DatabasePath() (string, error) {
	dbPath := c.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".doctags", "catalog.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create catalog directory: %w", err)
	}
	return dbPath, nil
}
