// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/stmtree/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger      logger.Config     `toml:"logger"`
	Parser      ParserConfig      `toml:"parser"`
	Coordinator CoordinatorConfig `toml:"coordinator"`

	// Path is the file the configuration was read from, empty for defaults only.
	Path string `toml:"-"`
	// Unknown lists keys in the file that matched no setting.
	Unknown []string `toml:"-"`
}

// ParserConfig selects the grammar the shared parsing engine is built with.
type ParserConfig struct {
	Grammar string `toml:"grammar"`
	// Strict rejects trees that contain error nodes.
	Strict bool `toml:"strict"`
}

// CoordinatorConfig tunes the tree cache.
type CoordinatorConfig struct {
	Workers int `toml:"workers"` // concurrent streams in ProcessStreams
	Shards  int `toml:"shards"`  // cache shards
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Parser: ParserConfig{
			Grammar: DefaultGrammar,
		},
		Coordinator: CoordinatorConfig{
			Workers: DefaultWorkers,
			Shards:  DefaultShards,
		},
	}
}

// DefaultPath returns the per-user config file location, or "" if unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is reported with
// os.ErrNotExist.
func loadFromFile(filePath string, cfg *Config) error {
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	cfg.Path = filePath
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Logger.MaxSizeMB <= 0 {
		c.Logger.MaxSizeMB = defaults.Logger.MaxSizeMB
	}
	if c.Logger.MaxBackups < 0 {
		c.Logger.MaxBackups = defaults.Logger.MaxBackups
	}
	if c.Parser.Grammar == "" {
		c.Parser.Grammar = defaults.Parser.Grammar
	}
	if c.Coordinator.Workers <= 0 {
		c.Coordinator.Workers = defaults.Coordinator.Workers
	}
	if c.Coordinator.Shards <= 0 {
		c.Coordinator.Shards = defaults.Coordinator.Shards
	}
}

// Load builds the configuration from defaults, the config file and flags, in
// that order of precedence (flags win).
//
// An empty path falls back to DefaultPath, which may be absent. An explicitly
// named file must exist.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		err := loadFromFile(path, cfg)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file '%s' not found", path)
		default:
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, nil
}
