// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the LOD governor.
type Config struct {
	SessionID              string  `yaml:"session_id"`
	LowFPSThreshold        float64 `yaml:"low_fps_threshold"`
	MemoryWarningThreshold float64 `yaml:"memory_warning_threshold"`
	EnableAutoLOD          bool    `yaml:"enable_auto_lod"`
	KeepAliveIntervalMs    int     `yaml:"keep_alive_interval_ms"`
	SamplingStrategy       string  `yaml:"sampling_strategy"`
	SamplingSeed           int64   `yaml:"sampling_seed"`
}

// KeepAliveInterval returns the heartbeat interval as a duration.
func (c *Config) KeepAliveInterval() time.Duration {
	return time.Duration(c.KeepAliveIntervalMs) * time.Millisecond
}

// Default returns a configuration sized for graphs with tens of thousands
// of nodes and edges.
func Default() *Config {
	return &Config{
		LowFPSThreshold:        30,
		MemoryWarningThreshold: 0.8,
		EnableAutoLOD:          true,
		KeepAliveIntervalMs:    30_000,
		SamplingStrategy:       "degree",
	}
}

// Load loads YAML config and validates it against a CUE schema. Fields left
// unset in the file keep their defaults.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges beyond what the CUE schema expresses.
func (c *Config) Validate() error {
	if c.MemoryWarningThreshold <= 0 || c.MemoryWarningThreshold >= 1 {
		return fmt.Errorf("memory_warning_threshold must be in (0,1), got %v", c.MemoryWarningThreshold)
	}
	if c.LowFPSThreshold <= 0 {
		return fmt.Errorf("low_fps_threshold must be positive, got %v", c.LowFPSThreshold)
	}
	if c.KeepAliveIntervalMs <= 0 {
		return fmt.Errorf("keep_alive_interval_ms must be positive, got %v", c.KeepAliveIntervalMs)
	}
	switch c.SamplingStrategy {
	case "random", "degree":
	default:
		return fmt.Errorf("unknown sampling_strategy %q", c.SamplingStrategy)
	}
	return nil
}
