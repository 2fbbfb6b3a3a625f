package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Stage kinds understood by the filter pipeline.
const (
	KindAll    = "all"
	KindPrefix = "prefix"
	KindAny    = "any"
	KindRange  = "range"
)

// ErrInvalidStage reports a stage definition that cannot be turned into a filter.
var ErrInvalidStage = errors.New("config: invalid stage")

// Config holds the application configuration loaded from a YAML file.
type Config struct {
	// ConcurrencyLimit bounds parse workers and parallel PTR lookups.
	ConcurrencyLimit int `yaml:"concurrencyLimit"`
	// Strict aborts the run on the first malformed line when true (the default);
	// otherwise malformed lines are logged and skipped.
	Strict *bool `yaml:"strict"`
	// Stages lists the output blocks, printed in order.
	Stages []Stage `yaml:"stages"`
	// Resolve configures the optional PTR column.
	Resolve ResolveConfig `yaml:"resolve"`
	// Log configures the logger.
	Log LogConfig `yaml:"log"`
}

// Stage describes one output block.
type Stage struct {
	Kind   string   `yaml:"kind"`
	Octets []int    `yaml:"octets,omitempty"`
	Value  *int     `yaml:"value,omitempty"`
	Ranges []string `yaml:"ranges,omitempty"`
}

// ResolveConfig configures reverse DNS annotation.
type ResolveConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Nameserver string        `yaml:"nameserver"`
	Timeout    time.Duration `yaml:"timeout"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

// DefaultStages returns the reference output sequence: every address, then the
// 1.* block, the 46.70.* block and every address holding 46 in any octet.
func DefaultStages() []Stage {
	any46 := 46
	return []Stage{
		{Kind: KindAll},
		{Kind: KindPrefix, Octets: []int{1}},
		{Kind: KindPrefix, Octets: []int{46, 70}},
		{Kind: KindAny, Value: &any46},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and unmarshals the configuration from the specified YAML file path.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", filePath, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// IsStrict reports whether malformed lines abort the run.
func (c *Config) IsStrict() bool {
	return c.Strict == nil || *c.Strict
}

// Validate checks every stage definition.
func (c *Config) Validate() error {
	for i, s := range c.Stages {
		if err := s.validate(); err != nil {
			return fmt.Errorf("stage %d (%s): %w", i, s.Kind, err)
		}
	}
	return nil
}

func (s Stage) validate() error {
	switch s.Kind {
	case KindAll:
		return nil
	case KindPrefix:
		if len(s.Octets) == 0 || len(s.Octets) > 4 {
			return fmt.Errorf("%w: prefix needs 1 to 4 octets, got %d", ErrInvalidStage, len(s.Octets))
		}
		for _, o := range s.Octets {
			if err := checkOctet(o); err != nil {
				return err
			}
		}
		return nil
	case KindAny:
		if s.Value == nil {
			return fmt.Errorf("%w: any needs a value", ErrInvalidStage)
		}
		return checkOctet(*s.Value)
	case KindRange:
		if len(s.Ranges) == 0 {
			return fmt.Errorf("%w: range needs at least one range", ErrInvalidStage)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidStage, s.Kind)
	}
}

func checkOctet(v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: octet %d out of range", ErrInvalidStage, v)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ConcurrencyLimit <= 0 {
		c.ConcurrencyLimit = 4
	}
	if len(c.Stages) == 0 {
		c.Stages = DefaultStages()
	}
	if c.Resolve.Nameserver == "" {
		c.Resolve.Nameserver = "127.0.0.1:53"
	}
	if c.Resolve.Timeout == 0 {
		c.Resolve.Timeout = 5 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
}
