package primitives

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is the poll cadence used when none is configured.
const DefaultInterval = 50 * time.Millisecond

// DefaultJournalSize bounds the in-memory commit journal.
const DefaultJournalSize = 64

// Duration wraps time.Duration for YAML round-tripping ("50ms", "1s").
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoopConfig defines the poll loop configuration.
type LoopConfig struct {
	// Interval is the fixed tick cadence. Zero means DefaultInterval.
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
	// JournalSize bounds the commit journal. Zero means DefaultJournalSize.
	JournalSize int `json:"journal_size,omitempty" yaml:"journal_size,omitempty"`
}

// Validate checks configured values are usable.
func (c *LoopConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval must not be negative")
	}
	if c.JournalSize < 0 {
		return errors.New("journal_size must not be negative")
	}
	return nil
}

// ApplyDefaults fills zero fields with the package defaults.
func (c *LoopConfig) ApplyDefaults() {
	if c.Interval == 0 {
		c.Interval = Duration(DefaultInterval)
	}
	if c.JournalSize == 0 {
		c.JournalSize = DefaultJournalSize
	}
}

// LoadLoopConfig reads and validates a LoopConfig from a YAML file.
// Defaults are applied after validation.
func LoadLoopConfig(path string) (LoopConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoopConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg LoopConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LoopConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return LoopConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
