package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/polezero/internal/config"
	"github.com/aretw0/polezero/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polezero",
	Short: "Edit and publish pole-zero filter configurations",
	Long: `polezero keeps the poles and zeros of a digital filter as a JSON value carried
in the query string of the frequency response page, and provides an editor,
an HTTP server, an MCP server and command line helpers around it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "polezero.yaml", "Configuration file (YAML, or JSON by extension)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides the config file)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject non-numeric coordinates instead of publishing an invalid configuration")
}

// loadConfig reads the configuration file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictValues, _ = cmd.Flags().GetBool("strict")
	}
	return cfg, nil
}

// newLogger builds the stderr logger for cfg.
func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
