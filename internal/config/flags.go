// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the configuration.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	EnableTags     []string
	DisableTags    []string
	Grammar        string
	Strict         bool
	Workers        int

	fs *pflag.FlagSet
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default <config dir>/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable - Overrides config file")
	fs.StringVar(&f.Grammar, "grammar", "", "Grammar to parse statements with - Overrides config file")
	fs.BoolVar(&f.Strict, "strict", false, "Treat trees with syntax errors as parse failures - Overrides config file")
	fs.IntVar(&f.Workers, "workers", 0, "Concurrent change streams - Overrides config file")
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "grammar":
			if f.Grammar != "" {
				cfg.Parser.Grammar = f.Grammar
			}
		case "strict":
			cfg.Parser.Strict = f.Strict
		case "workers":
			if f.Workers > 0 {
				cfg.Coordinator.Workers = f.Workers
			}
		}
	})
}
