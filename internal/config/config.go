// Package config loads ossemdict settings from an optional YAML file and
// the environment. Command-line flags are applied on top by the cmd
// package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig   = "OSSEMDICT_CONFIG"
	EnvLogLevel = "OSSEMDICT_LOG_LEVEL"
	EnvLogJSON  = "OSSEMDICT_LOG_JSON"
)

// Config holds every setting a command can take from a file.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Scrape ScrapeConfig `yaml:"scrape"`
	Graph  GraphConfig  `yaml:"graph"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// JSON disables the human-readable console writer.
	JSON bool `yaml:"json"`
}

// ScrapeConfig holds scrape output locations.
type ScrapeConfig struct {
	OutputJSON  string `yaml:"output_json"`
	OutputCSV   string `yaml:"output_csv"`
	MetricsFile string `yaml:"metrics_file"`
}

// GraphConfig holds graph rendering preferences.
type GraphConfig struct {
	CollapseSameName bool `yaml:"collapse_same_name"`
	DeduplicateEdges bool `yaml:"deduplicate_edges"`
	// Format, when set, renders the DOT file with Graphviz (png, svg, pdf).
	Format string `yaml:"format"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Scrape: ScrapeConfig{
			OutputJSON: "data_dict.json",
			OutputCSV:  "data_dict.csv",
		},
		Graph: GraphConfig{
			CollapseSameName: true,
			DeduplicateEdges: true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// a named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides logging settings from the environment.
func (c *Config) ApplyEnv() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if raw := os.Getenv(EnvLogJSON); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogJSON, err)
		}
		c.Log.JSON = v
	}
	return nil
}
