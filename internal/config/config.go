package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	CacheDir   string        `mapstructure:"cache_dir" yaml:"cache_dir"`
	ResultsDir string        `mapstructure:"results_dir" yaml:"results_dir"`
	DBPath     string        `mapstructure:"db_path" yaml:"db_path"`
	Tables     TablesConfig  `mapstructure:"tables" yaml:"tables"`
	Network    NetworkConfig `mapstructure:"network" yaml:"network"`
	Tools      ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Workers    int           `mapstructure:"workers" yaml:"workers"`
}

// TablesConfig locates the CSV reference tables. Exclude and Parents are
// required before any candidate can be classified.
type TablesConfig struct {
	Exclude        string `mapstructure:"exclude" yaml:"exclude"`
	Parents        string `mapstructure:"parents" yaml:"parents"`
	MetadataColumn int    `mapstructure:"metadata_column" yaml:"metadata_column"`
}

// NetworkConfig bounds the engine's network probes
type NetworkConfig struct {
	DNSServer    string `mapstructure:"dns_server" yaml:"dns_server"`
	DNSTimeout   string `mapstructure:"dns_timeout" yaml:"dns_timeout"`
	HTTPTimeout  string `mapstructure:"http_timeout" yaml:"http_timeout"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// ToolConfig represents configuration for a single external tool
type ToolConfig struct {
	Path     string `mapstructure:"path" yaml:"path"`
	Standard string `mapstructure:"standard" yaml:"standard"`
	Timeout  string `mapstructure:"timeout" yaml:"timeout"`
}

// ToolsConfig contains configuration for all external tools
type ToolsConfig struct {
	Pa11y ToolConfig `mapstructure:"pa11y" yaml:"pa11y"`
}

// Load reads and parses configuration from a YAML file.
// If path is empty, searches for subsift.yaml in the current directory and
// ~/.config/subsift/
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("subsift")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "subsift"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir cannot be empty"))
	}

	if c.ResultsDir == "" {
		errs = append(errs, errors.New("results_dir cannot be empty"))
	}

	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path cannot be empty"))
	}

	if c.Workers <= 0 {
		errs = append(errs, errors.New("workers must be positive"))
	}

	for name, value := range map[string]string{
		"network.dns_timeout":  c.Network.DNSTimeout,
		"network.http_timeout": c.Network.HTTPTimeout,
		"tools.pa11y.timeout":  c.Tools.Pa11y.Timeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			errs = append(errs, fmt.Errorf("%s is not a valid duration: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ValidateTables checks that the reference tables the classify command
// requires exist. Missing tables are a fatal startup error: classification
// has no meaningful behavior without them.
func (c *Config) ValidateTables() error {
	var errs []error

	for name, path := range map[string]string{
		"tables.exclude": c.Tables.Exclude,
		"tables.parents": c.Tables.Parents,
	} {
		if path == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
			continue
		}
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Duration parses a duration string, returning fallback for empty or
// invalid values. Validate has already rejected malformed config values.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
