package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hakim/subsift/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subsift",
	Short: "Classify candidate subdomains into genuine public websites",
	Long: `Subsift takes a CSV of potential subdomains (e.g. harvested from passive
DNS traffic) and produces a curated CSV of likely public websites, annotated
with redirect behavior, HTTP status, and wildcard DNS evidence.

It consumes per-domain records from an upstream endpoint inspector, filters
candidates through a cost-ascending skip pipeline, and caches its DNS and
content probes so repeat runs stay off the network.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		skipConfig := map[string]bool{
			"check":   true,
			"init":    true,
			"help":    true,
			"version": true,
		}

		if skipConfig[cmd.Name()] {
			return nil
		}

		if cfgFile != "" {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "subsift.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Version flag
	rootCmd.Version = "0.1.0-dev"
}

// newLogger builds the debug logger the engine uses for per-candidate skip
// tracing. Without --verbose only warnings and errors surface.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
