// Package config loads the service configuration: defaults, then an optional
// YAML file, then GEOCHEM_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/geochem/lambdas"
	"github.com/katalvlaran/geochem/profile"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Profile ProfileConfig `yaml:"profile"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Upper bounds on per-request sizes.
const (
	DefaultMaxLinePoints = 20000
	DefaultMaxDegree     = 14
)

// ProfileConfig holds the defaults applied when a request leaves a field out,
// and the largest values a request may ask for.
type ProfileConfig struct {
	Degree        int    `yaml:"degree"`
	Domain        string `yaml:"domain"`
	Drop0         bool   `yaml:"drop0"`
	IncludePm     bool   `yaml:"include_pm"`
	LinePoints    int    `yaml:"line_points"`
	MaxLinePoints int    `yaml:"max_line_points"`
	MaxDegree     int    `yaml:"max_degree"`
}

// SlogLevel maps Logging.Level onto a slog level; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate rejects settings the evaluators cannot honour.
func (c *Config) Validate() error {
	if c.Profile.Degree < 0 {
		return fmt.Errorf("profile.degree %d: must be >= 0", c.Profile.Degree)
	}
	if c.Profile.LinePoints < 2 {
		return fmt.Errorf("profile.line_points %d: must be >= 2", c.Profile.LinePoints)
	}
	if c.Profile.MaxDegree < c.Profile.Degree {
		return fmt.Errorf("profile.max_degree %d: below profile.degree %d", c.Profile.MaxDegree, c.Profile.Degree)
	}
	if c.Profile.MaxLinePoints < c.Profile.LinePoints {
		return fmt.Errorf("profile.max_line_points %d: below profile.line_points %d", c.Profile.MaxLinePoints, c.Profile.LinePoints)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format %q: want json or text", c.Logging.Format)
	}

	return nil
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Profile: ProfileConfig{
			Degree:        lambdas.DefaultDegree,
			Domain:        string(profile.DomainRadii),
			Drop0:         true,
			IncludePm:     false,
			LinePoints:    profile.DefaultLinePoints,
			MaxLinePoints: DefaultMaxLinePoints,
			MaxDegree:     DefaultMaxDegree,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GEOCHEM_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("GEOCHEM_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("GEOCHEM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GEOCHEM_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("GEOCHEM_DEGREE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Profile.Degree = n
		}
	}
	if v := os.Getenv("GEOCHEM_MAX_LINE_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Profile.MaxLinePoints = n
		}
	}
	if v := os.Getenv("GEOCHEM_MAX_DEGREE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Profile.MaxDegree = n
		}
	}
	if v := os.Getenv("GEOCHEM_DROP0"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Profile.Drop0 = b
		}
	}
}
