// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Patient describes one monitored patient in the ward roster.
type Patient struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Regime string `yaml:"regime"`
}

// MonitorConfig is the root configuration for a ward simulation.
type MonitorConfig struct {
	WardID            string    `yaml:"ward_id"`
	Patients          []Patient `yaml:"patients"`
	TickIntervalMS    int       `yaml:"tick_interval_ms"`
	HistorySamples    int       `yaml:"history_samples"`
	HistoryIntervalMS int       `yaml:"history_interval_ms"`
}

// Defaults applied when the config leaves a field unset.
const (
	DefaultTickIntervalMS    = 2500
	DefaultHistorySamples    = 5
	DefaultHistoryIntervalMS = 30000
)

// TickInterval returns the configured tick interval or the default.
func (c *MonitorConfig) TickInterval() time.Duration {
	if c.TickIntervalMS <= 0 {
		return DefaultTickIntervalMS * time.Millisecond
	}
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// HistoryCount returns how many samples seed each new series.
func (c *MonitorConfig) HistoryCount() int {
	if c.HistorySamples <= 0 {
		return DefaultHistorySamples
	}
	return c.HistorySamples
}

// HistoryInterval returns the spacing of seeded history samples.
func (c *MonitorConfig) HistoryInterval() time.Duration {
	if c.HistoryIntervalMS <= 0 {
		return DefaultHistoryIntervalMS * time.Millisecond
	}
	return time.Duration(c.HistoryIntervalMS) * time.Millisecond
}

// PatientIDs returns the roster ids in config order.
func (c *MonitorConfig) PatientIDs() []string {
	ids := make([]string, 0, len(c.Patients))
	for _, p := range c.Patients {
		ids = append(ids, p.ID)
	}
	return ids
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*MonitorConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg MonitorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Patients) == 0 {
		return nil, fmt.Errorf("no patients defined in %s", configPath)
	}
	return &cfg, nil
}
