// Package config loads the decoder's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"crosswarped.com/segdecode"
)

type Config struct {
	Policy   string `yaml:"policy"` // "discard-line" (default) or "skip-digit"
	Workers  int    `yaml:"workers"`
	Verify   bool   `yaml:"verify"`
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn" or "error"
	Timeout  string `yaml:"timeout"`   // Go duration, e.g. "30s"
	Source   Source `yaml:"source"`
}

// Source selects where puzzle lines come from. At most one of File and
// BigQuery.Table may be set.
type Source struct {
	File     string   `yaml:"file"`
	BigQuery BigQuery `yaml:"bigquery"`
}

type BigQuery struct {
	Project  string `yaml:"project"`
	Table    string `yaml:"table"`
	Location string `yaml:"location"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	// Finalize cannot fail on the zero value.
	_ = cfg.Finalize()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize fills in defaults and validates the configuration.
func (c *Config) Finalize() error {
	if c.Policy == "" {
		c.Policy = segdecode.PolicyDiscardLine.String()
	}
	if _, err := segdecode.ParsePolicy(c.Policy); err != nil {
		return err
	}

	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	if c.Timeout == "" {
		c.Timeout = "1m"
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", d)
	}

	if c.Source.File != "" && c.Source.BigQuery.Table != "" {
		return errors.New("source.file and source.bigquery.table are mutually exclusive")
	}
	if c.Source.BigQuery.Table != "" && c.Source.BigQuery.Project == "" {
		return errors.New("source.bigquery.project is required with source.bigquery.table")
	}
	if c.Source.BigQuery.Location == "" {
		c.Source.BigQuery.Location = "US"
	}
	return nil
}

// PolicyValue returns the parsed policy. Only valid after Finalize.
func (c *Config) PolicyValue() segdecode.Policy {
	p, _ := segdecode.ParsePolicy(c.Policy)
	return p
}

// TimeoutValue returns the parsed timeout. Only valid after Finalize.
func (c *Config) TimeoutValue() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
