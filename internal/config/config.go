// Package config loads listkeeper's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/listkeeper/internal/lists"
	"github.com/HendryAvila/listkeeper/internal/storage"
)

// Directory and file names under the user's home.
const (
	DirName  = ".listkeeper"
	FileName = "config.yaml"
)

// Config is the top-level configuration.
type Config struct {
	// DataDir holds the file backend's lists/ directory and the SQLite
	// database.
	DataDir string `yaml:"data_dir"`

	// SnapshotKey is the gateway key each session persists to.
	SnapshotKey string `yaml:"snapshot_key"`

	// Backend is one of file, sqlite, memory.
	Backend string `yaml:"backend"`

	// SessionID selects the namespace the CLI operates in.
	SessionID string `yaml:"session_id"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validFormats = map[string]bool{"json": true, "console": true}

// DefaultDir returns ~/.listkeeper, or .listkeeper when the home directory
// cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), FileName)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDir(),
		SnapshotKey: lists.DefaultSnapshotKey,
		Backend:     string(storage.BackendFile),
		SessionID:   "default",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LISTKEEPER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LISTKEEPER_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("LISTKEEPER_SESSION"); v != "" {
		c.SessionID = v
	}
	if v := os.Getenv("LISTKEEPER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if _, err := storage.ParseBackend(c.Backend); err != nil {
		return err
	}
	if strings.TrimSpace(c.SnapshotKey) == "" {
		return fmt.Errorf("snapshot_key is required")
	}
	if strings.TrimSpace(c.SessionID) == "" {
		return fmt.Errorf("session_id is required")
	}
	if c.Backend != string(storage.BackendMemory) && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging.level %q (use debug, info, warn or error)", c.Logging.Level)
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid logging.format %q (use json or console)", c.Logging.Format)
	}
	return nil
}

// BackendKind returns the parsed backend. Call Validate first.
func (c *Config) BackendKind() storage.Backend {
	b, _ := storage.ParseBackend(c.Backend)
	return b
}
