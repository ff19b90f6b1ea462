package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateFormat = "2006-01-02"

// Config represents the top-level ledgertree.yaml configuration.
type Config struct {
	Period    PeriodConfig  `yaml:"period"`
	ChartFile string        `yaml:"chart_file"`
	Journal   JournalConfig `yaml:"journal"`
	LogLevel  string        `yaml:"log_level,omitempty"`
}

// PeriodConfig defines the reporting period boundaries.
type PeriodConfig struct {
	From string `yaml:"from"` // "2006-01-02" format
	To   string `yaml:"to"`
}

// JournalConfig selects where journal entries are read from.
type JournalConfig struct {
	Source string `yaml:"source"` // "csv" or "sqlite"
	Path   string `yaml:"path"`
}

// Window parses the period boundaries into times.
func (p PeriodConfig) Window() (time.Time, time.Time, error) {
	from, err := time.Parse(dateFormat, p.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing period from %q: %w", p.From, err)
	}
	to, err := time.Parse(dateFormat, p.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing period to %q: %w", p.To, err)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("period from %s is after to %s", p.From, p.To)
	}
	return from, to, nil
}

// Load reads a ledgertree.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(from, to time.Time) *Config {
	return &Config{
		Period: PeriodConfig{
			From: from.Format(dateFormat),
			To:   to.Format(dateFormat),
		},
		ChartFile: "chart.yaml",
		Journal: JournalConfig{
			Source: "csv",
			Path:   "journal.csv",
		},
		LogLevel: "info",
	}
}
