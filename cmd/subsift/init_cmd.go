package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hakim/subsift/internal/config"
	"github.com/hakim/subsift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize subsift with default configuration",
	Long: `Creates a default configuration file (subsift.yaml), initializes the
cache and results directory structure, and sets up the database for probe
caches and run metadata.

This is typically the first command you run when setting up subsift.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "subsift.yaml"
		if initDir != "." {
			configPath = filepath.Join(initDir, "subsift.yaml")
		}

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists at %s. Use --force to overwrite", configPath)
		}

		// Create default config
		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Printf("Created %s with default configuration\n", configPath)

		// Load the config we just created to get paths
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Create cache and results directories
		for _, dir := range []string{cfg.CacheDir, filepath.Join(cfg.CacheDir, "inspect"), cfg.ResultsDir} {
			if err := storage.EnsureDir(dir); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
		fmt.Printf("Created cache directory: %s\n", cfg.CacheDir)
		fmt.Printf("Created results directory: %s\n", cfg.ResultsDir)

		// Initialize database
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()
		fmt.Printf("Initialized database: %s\n", cfg.DBPath)

		// Print success message
		fmt.Println()
		fmt.Println("Subsift initialized successfully!")
		fmt.Println("Point tables.exclude and tables.parents at your reference CSVs,")
		fmt.Println("then run 'subsift classify -c candidates.csv'.")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "output directory")
	rootCmd.AddCommand(initCmd)
}
