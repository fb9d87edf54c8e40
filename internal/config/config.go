// Package config provides configuration management for tempwatch.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tempwatch/internal/logger"
)

// MinInterval is the shortest accepted polling interval, in seconds.
const MinInterval = 1.0

// Sensor sources.
const (
	SourceLMSensors = "lm-sensors"
	SourceHwmon     = "hwmon"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrIntervalTooShort is returned for intervals below MinInterval.
var ErrIntervalTooShort = errors.New("time interval must be at least 1 second")

// Config is the root configuration structure.
type Config struct {
	Interval       float64         `json:"Interval"` // seconds
	DeltaTimes     bool            `json:"DeltaTimes"`
	SensorSource   string          `json:"SensorSource"` // "lm-sensors" or "hwmon"
	Color          string          `json:"Color"`        // "auto", "always" or "never"
	SensorsCommand CommandConfig   `json:"SensorsCommand"`
	GPUCommand     CommandConfig   `json:"GPUCommand"`
	Thresholds     ThresholdConfig `json:"Thresholds"`
	Logging        logger.Config   `json:"Logging"`
}

// CommandConfig describes an external diagnostic utility.
type CommandConfig struct {
	Enabled bool          `json:"Enabled"` // read for GPUCommand only
	Path    string        `json:"Path"`
	Args    []string      `json:"Args"`
	Timeout time.Duration `json:"Timeout"` // 0 waits indefinitely
}

// ThresholdConfig holds the color tier boundaries, in degrees Celsius.
type ThresholdConfig struct {
	Warm     float64 `json:"Warm"`     // values >= Warm are yellow
	Hot      float64 `json:"Hot"`      // values >= Hot are red
	DeltaHot float64 `json:"DeltaHot"` // rises >= DeltaHot are red
}

// DefaultThresholds returns the standard tier boundaries.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{Warm: 50.0, Hot: 70.0, DeltaHot: 5.0}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval:     1.0,
		SensorSource: SourceLMSensors,
		Color:        ColorAuto,
		SensorsCommand: CommandConfig{
			Path: "sensors",
			Args: []string{"-j"},
		},
		GPUCommand: CommandConfig{
			Enabled: true,
			Path:    "nvidia-smi",
			Args:    []string{"--query-gpu=temperature.gpu", "--format=csv,noheader"},
		},
		Thresholds: DefaultThresholds(),
		Logging:    logger.DefaultConfig(),
	}
}

// IntervalDuration converts an interval in seconds to a time.Duration.
func IntervalDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// ParseInterval parses a polling interval given in (possibly fractional) seconds.
func ParseInterval(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid time interval %q: expected a number of seconds", s)
	}
	return v, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Interval < MinInterval {
		return ErrIntervalTooShort
	}

	switch c.SensorSource {
	case SourceLMSensors:
		if c.SensorsCommand.Path == "" {
			return errors.New("SensorsCommand.Path must not be empty")
		}
	case SourceHwmon:
	default:
		return fmt.Errorf("unsupported sensor source %q: must be %q or %q", c.SensorSource, SourceLMSensors, SourceHwmon)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unsupported color mode %q: must be auto, always or never", c.Color)
	}

	if c.GPUCommand.Enabled && c.GPUCommand.Path == "" {
		return errors.New("GPUCommand.Path must not be empty when GPU is enabled")
	}
	if c.SensorsCommand.Timeout < 0 || c.GPUCommand.Timeout < 0 {
		return errors.New("command timeouts must not be negative")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid Logging.Level %q: %w", c.Logging.Level, err)
	}
	switch c.Logging.Format {
	case "", "fixed", "json":
	default:
		return fmt.Errorf("unsupported Logging.Format %q: must be \"fixed\" or \"json\"", c.Logging.Format)
	}

	return c.Thresholds.Validate()
}

// Validate checks that the tiers are ordered.
func (t ThresholdConfig) Validate() error {
	if t.Warm >= t.Hot {
		return fmt.Errorf("Thresholds.Warm (%.1f) must be below Thresholds.Hot (%.1f)", t.Warm, t.Hot)
	}
	if t.DeltaHot <= 0 {
		return fmt.Errorf("Thresholds.DeltaHot (%.1f) must be positive", t.DeltaHot)
	}
	return nil
}

// Merge applies non-zero values from other to this config. Boolean fields are
// applied by the loader, which knows whether they were present in the file.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Interval != 0 {
		c.Interval = other.Interval
	}
	if other.SensorSource != "" {
		c.SensorSource = other.SensorSource
	}
	if other.Color != "" {
		c.Color = other.Color
	}

	c.SensorsCommand.merge(other.SensorsCommand)
	c.GPUCommand.merge(other.GPUCommand)

	if other.Thresholds.Warm != 0 {
		c.Thresholds.Warm = other.Thresholds.Warm
	}
	if other.Thresholds.Hot != 0 {
		c.Thresholds.Hot = other.Thresholds.Hot
	}
	if other.Thresholds.DeltaHot != 0 {
		c.Thresholds.DeltaHot = other.Thresholds.DeltaHot
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.FilePath != "" {
		c.Logging.FilePath = other.Logging.FilePath
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxBackups != 0 {
		c.Logging.MaxBackups = other.Logging.MaxBackups
	}
	if other.Logging.MaxAgeDays != 0 {
		c.Logging.MaxAgeDays = other.Logging.MaxAgeDays
	}
	if other.Logging.Format != "" {
		c.Logging.Format = other.Logging.Format
	}
}

func (cc *CommandConfig) merge(other CommandConfig) {
	if other.Path != "" {
		cc.Path = other.Path
	}
	if other.Args != nil {
		cc.Args = other.Args
	}
	if other.Timeout != 0 {
		cc.Timeout = other.Timeout
	}
}
