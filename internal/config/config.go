package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the top-level reconciler.yaml configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Matching   MatchingConfig   `yaml:"matching"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// MatchingConfig controls when a bank/book pair is accepted.
type MatchingConfig struct {
	AcceptThreshold int    `yaml:"accept_threshold"`
	AmountTolerance string `yaml:"amount_tolerance"`
}

// ClassifierConfig controls anomaly classification.
type ClassifierConfig struct {
	TranspositionWindowDays int `yaml:"transposition_window_days"`
}

// Default returns a Config with the standard reconciliation rules.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Matching: MatchingConfig{
			AcceptThreshold: 70,
			AmountTolerance: "0.01",
		},
		Classifier: ClassifierConfig{
			TranspositionWindowDays: 5,
		},
	}
}

// Load reads a YAML config file from disk. Settings missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all settings are in range.
func (c *Config) Validate() error {
	if c.Matching.AcceptThreshold < 0 || c.Matching.AcceptThreshold > 100 {
		return fmt.Errorf("%w: accept_threshold %d not in [0,100]", ErrInvalidConfig, c.Matching.AcceptThreshold)
	}
	tol, err := c.Tolerance()
	if err != nil {
		return fmt.Errorf("%w: amount_tolerance: %v", ErrInvalidConfig, err)
	}
	if !tol.IsPositive() {
		return fmt.Errorf("%w: amount_tolerance must be positive", ErrInvalidConfig)
	}
	if c.Classifier.TranspositionWindowDays < 0 {
		return fmt.Errorf("%w: transposition_window_days must not be negative", ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Tolerance returns the parsed amount tolerance.
func (c *Config) Tolerance() (decimal.Decimal, error) {
	return decimal.NewFromString(c.Matching.AmountTolerance)
}
