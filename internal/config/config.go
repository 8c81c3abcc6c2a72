// Package config loads diskmap settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = ".diskmap.yaml"

// Config holds the settings that can be stored in a config file.
type Config struct {
	// Width is the width of the whole map in pixels.
	Width int `yaml:"width"`
	// Height is the height of the whole map in pixels.
	Height int `yaml:"height"`
	// Depth is the number of directory levels expanded into boxes.
	Depth int `yaml:"depth"`
	// Unlimited expands every directory regardless of Depth.
	Unlimited bool `yaml:"unlimited"`
	// Workers bounds concurrent subtree scans.
	Workers int `yaml:"workers"`
	// Walker is the scan strategy, native or fastwalk.
	Walker string `yaml:"walker"`
	// BoxRatio is the width/height threshold for horizontal splits.
	BoxRatio float64 `yaml:"box_ratio"`
	// Exclude contains regex patterns of paths left out of the scan.
	Exclude []string `yaml:"exclude"`
	// MinSize drops files smaller than this (e.g. 1KB).
	MinSize string `yaml:"min_size"`
	// Output is the output format: table, json or csv.
	Output string `yaml:"output"`
	// LogLevel is the zap level name.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Width:    1200,
		Height:   800,
		Depth:    4,
		Workers:  runtime.NumCPU(),
		Walker:   "native",
		BoxRatio: 0.5,
		Exclude:  []string{},
		MinSize:  "0B",
		Output:   "table",
		LogLevel: "warn",
	}
}

// LoadConfig reads the YAML file at path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for explicit empty lists)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values that cannot produce a layout.
func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("dimensions cannot be negative: %dx%d", c.Width, c.Height)
	case c.Depth < 0:
		return errors.New("depth cannot be negative")
	case c.BoxRatio <= 0:
		return fmt.Errorf("box_ratio must be positive, got %v", c.BoxRatio)
	}

	return nil
}
