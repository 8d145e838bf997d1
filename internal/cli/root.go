package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/headway/internal/config"
	"github.com/rileyhilliard/headway/internal/logger"
	"github.com/rileyhilliard/headway/internal/ui"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

// settings holds the configuration loaded before any subcommand runs.
var settings = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "headway",
	Short: "Terminal progress bars that stay out of your output's way",
	Long: `headway draws progress bars below your program's output and keeps
them there while the program prints.

Run the demos to see single, concurrent, split and abandoned bars:
  headway demo --list
  headway demo split-weighted`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
}

// loadSettings reads configuration and applies global flags.
func loadSettings() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if noColor {
		cfg.Color = config.ModeNever
	}
	if cfg.Color == config.ModeNever {
		ui.DisableColors()
	}
	if cfg.Debug {
		logger.SetDefault(logger.New("[headway]", os.Stderr, true))
	}
	settings = cfg
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $"+config.ConfigEnv+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		os.Exit(1)
	}
}
