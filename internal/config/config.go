// Package config loads eqcore configuration from YAML.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLnmEpsilon matches funcs.DefaultLnmEpsilon.
const DefaultLnmEpsilon = 1.0e-8

// Config is the eqcore configuration.
type Config struct {
	Dimensions DimensionsConfig `yaml:"dimensions" json:"dimensions"`
	Functions  FunctionsConfig  `yaml:"functions" json:"functions"`
	Catalog    CatalogConfig    `yaml:"catalog" json:"catalog"`
	Log        LogConfig        `yaml:"log" json:"log"`
}

// DimensionsConfig controls the dimension algebra.
type DimensionsConfig struct {
	// Check enables integrality validation in the power and sum operations.
	Check bool `yaml:"check" json:"check"`
}

// FunctionsConfig controls the function registry.
type FunctionsConfig struct {
	// LnmEpsilon is the threshold below which lnm is linearized.
	LnmEpsilon float64 `yaml:"lnm_epsilon" json:"lnm_epsilon"`
}

// CatalogConfig locates the dimension catalog. An empty Path disables it.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dimensions: DimensionsConfig{Check: true},
		Functions:  FunctionsConfig{LnmEpsilon: DefaultLnmEpsilon},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	eps := c.Functions.LnmEpsilon
	if !(eps > 0) || math.IsInf(eps, 0) {
		return fmt.Errorf("functions.lnm_epsilon must be a positive finite number, got %g", eps)
	}
	if eps >= 1 {
		return fmt.Errorf("functions.lnm_epsilon must be < 1, got %g", eps)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", name)
	}
}
