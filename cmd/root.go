package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/ossemdict/internal/config"
	"github.com/itsmostafa/ossemdict/internal/logger"
	"github.com/itsmostafa/ossemdict/internal/version"
	"github.com/spf13/cobra"
)

var configPath string
var logLevel string
var logJSON bool

// Populated by setup before any subcommand runs.
var cfg = config.Default()
var log = logger.Nop()

var rootCmd = &cobra.Command{
	Use:   "ossemdict",
	Short: "Scrape and query OSSEM data dictionaries",
	Long: `ossemdict collects the "## Data Dictionary" tables of OSSEM markdown files into a
single product → log → field catalog, filters it, and exports CSV and Graphviz
graphs showing how product field names map onto OSSEM standard names.

Reference: https://github.com/OTRF/OSSEM`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("ossemdict %s\n", version.String()))

	// Config file flag with env var fallback
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvConfig), "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit JSON logs instead of console output")
}

// setup loads the config file, applies env and flag overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-json") {
		loaded.Log.JSON = logJSON
	}

	cfg = loaded
	log = logger.NewLogger(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: !cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
