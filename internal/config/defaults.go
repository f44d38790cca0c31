package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		CacheDir:   "cache",
		ResultsDir: "results",
		DBPath:     "subsift.db",
		Tables: TablesConfig{
			Exclude:        "data/exclude.csv",
			Parents:        "data/parents.csv",
			MetadataColumn: 2,
		},
		Network: NetworkConfig{
			DNSServer:    "",
			DNSTimeout:   "5s",
			HTTPTimeout:  "30s",
			MaxBodyBytes: 5 << 20,
		},
		Tools: ToolsConfig{
			Pa11y: ToolConfig{
				Path:     "pa11y",
				Standard: "WCAG2AA",
				Timeout:  "2m",
			},
		},
		Workers: 1,
	}
}

// WriteDefault writes a default configuration to the specified path
func WriteDefault(path string) error {
	cfg := DefaultConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
