// cmd/stmtree/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bethropolis/stmtree/internal/config"
	"github.com/bethropolis/stmtree/internal/logger"
)

var (
	flags     config.Flags
	colorMode string

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           config.AppName,
	Short:         "Incremental syntax trees for SQL statements",
	Long:          `stmtree keeps one syntax tree per statement and updates it incrementally as statements are edited.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch colorMode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
		default:
			return fmt.Errorf("invalid --color value %q (auto|on|off)", colorMode)
		}

		loaded, err := config.Load(flags.ConfigFilePath, &flags)
		if err != nil {
			return err
		}
		cfg = loaded

		closer, err := logger.Setup(cfg.Logger)
		if err != nil {
			return err
		}
		logCloser = closer

		if cfg.Path != "" {
			logger.Infof("Loaded configuration from %s", cfg.Path)
		}
		for _, key := range cfg.Unknown {
			logger.Warnf("Config: unknown key '%s' ignored", key)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	flags.Register(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(grammarsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorColor.Sprint("error: ")+err.Error())
		if logCloser != nil {
			logCloser.Close()
		}
		os.Exit(1)
	}
}
