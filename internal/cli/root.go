// Package cli implements the command-line interface for gocube.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_animator/internal/config"
	"github.com/SeamusWaldron/gocube_animator/internal/logger"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg      *config.Config
	closeLog func() error
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube",
	Short: "Animated 3x3 cube in the terminal",
	Long: `GoCube Animator - turn the layers of a 3x3 cube from the keyboard or from a
GoCube smart cube over Bluetooth, and watch each quarter turn animate.

Moves queue up while a layer is turning and play back in order.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.gocube_animator/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// getConfigPath returns the config path from flag or default.
func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// setup loads the config file and opens the log file.
// A missing config file means defaults.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		loaded.Log.Debug = true
	}
	cfg = loaded

	cleanup, err := logger.Setup(logger.Config{Path: cfg.Log.Path, Debug: cfg.Log.Debug})
	if err != nil {
		// Logging is optional; the logger discards until fixed.
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return nil
	}
	closeLog = cleanup
	logger.L().Info("cli.start", "command", cmd.CommandPath(), "version", version)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if closeLog != nil {
		return closeLog()
	}
	return nil
}
