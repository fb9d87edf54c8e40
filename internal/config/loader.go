package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"tempwatch/internal/logger"
)

// rawConfig is used for JSON unmarshaling with duration and interval strings.
// Booleans are pointers so absent keys keep their defaults.
type rawConfig struct {
	Interval       json.RawMessage  `json:"Interval"`
	DeltaTimes     *bool            `json:"DeltaTimes"`
	SensorSource   string           `json:"SensorSource"`
	Color          string           `json:"Color"`
	SensorsCommand rawCommandConfig `json:"SensorsCommand"`
	GPUCommand     rawCommandConfig `json:"GPUCommand"`
	Thresholds     ThresholdConfig  `json:"Thresholds"`
	Logging        rawLoggingConfig `json:"Logging"`
}

type rawCommandConfig struct {
	Enabled *bool    `json:"Enabled"`
	Path    string   `json:"Path"`
	Args    []string `json:"Args"`
	Timeout string   `json:"Timeout"`
}

type rawLoggingConfig struct {
	Level      string `json:"Level"`
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   *bool  `json:"Compress"`
	Console    *bool  `json:"Console"`
	Format     string `json:"Format"`
}

// Load reads configuration from the specified file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from JSON bytes on top of DefaultConfig.
// The result is not validated; command-line overrides are applied first.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := DefaultConfig()
	parsed, err := convertRawConfig(&raw)
	if err != nil {
		return nil, err
	}
	cfg.Merge(parsed)

	if raw.DeltaTimes != nil {
		cfg.DeltaTimes = *raw.DeltaTimes
	}
	if raw.GPUCommand.Enabled != nil {
		cfg.GPUCommand.Enabled = *raw.GPUCommand.Enabled
	}
	if raw.Logging.Compress != nil {
		cfg.Logging.Compress = *raw.Logging.Compress
	}
	if raw.Logging.Console != nil {
		cfg.Logging.Console = *raw.Logging.Console
	}

	return cfg, nil
}

func convertRawConfig(raw *rawConfig) (*Config, error) {
	cfg := &Config{
		SensorSource: raw.SensorSource,
		Color:        raw.Color,
		Thresholds:   raw.Thresholds,
		Logging:      convertRawLogging(&raw.Logging),
	}

	if len(raw.Interval) > 0 {
		// accept both "1.5" and 1.5
		text := strings.Trim(string(raw.Interval), `"`)
		v, err := ParseInterval(text)
		if err != nil {
			return nil, err
		}
		cfg.Interval = v
	}

	sensors, err := convertRawCommand("SensorsCommand", &raw.SensorsCommand)
	if err != nil {
		return nil, err
	}
	cfg.SensorsCommand = *sensors

	gpu, err := convertRawCommand("GPUCommand", &raw.GPUCommand)
	if err != nil {
		return nil, err
	}
	cfg.GPUCommand = *gpu

	return cfg, nil
}

func convertRawCommand(name string, raw *rawCommandConfig) (*CommandConfig, error) {
	cmd := &CommandConfig{
		Path: raw.Path,
		Args: raw.Args,
	}

	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid Timeout for %s: %w", name, err)
		}
		cmd.Timeout = d
	}

	return cmd, nil
}

func convertRawLogging(raw *rawLoggingConfig) logger.Config {
	return logger.Config{
		Level:      raw.Level,
		FilePath:   raw.FilePath,
		MaxSizeMB:  raw.MaxSizeMB,
		MaxBackups: raw.MaxBackups,
		MaxAgeDays: raw.MaxAgeDays,
		Format:     raw.Format,
	}
}

// LoadOrDefault loads path, or returns DefaultConfig when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}
