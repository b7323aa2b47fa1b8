package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppDir is the directory name used under the XDG data home.
const AppDir = "obe"

// ─── Section configs ────────────────────────────────────────────────────

type SessionConfig struct {
	Name          string  `yaml:"name"`
	OutputRoot    string  `yaml:"output_root"`
	TimeZone      string  `yaml:"time_zone"`
	LogHz         float64 `yaml:"log_hz"`
	NameSeparator string  `yaml:"name_separator"`
}

type HostConfig struct {
	FixedHz              float64 `yaml:"fixed_hz"`
	DurationSeconds      float64 `yaml:"duration_seconds"` // 0 runs until interrupted
	StatsIntervalSeconds int     `yaml:"stats_interval_seconds"`
}

type SimulationConfig struct {
	Enabled bool     `yaml:"enabled"`
	Drop    []string `yaml:"drop"` // bodies left unassigned, e.g. [LHand]
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the top-level structure for obe.yaml.
type Config struct {
	Session    SessionConfig    `yaml:"session"`
	Host       HostConfig       `yaml:"host"`
	Simulation SimulationConfig `yaml:"simulation"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			Name:     "Session",
			TimeZone: "America/New_York",
			LogHz:    60.0,
		},
		Host: HostConfig{
			FixedHz:              50.0,
			StatsIntervalSeconds: 5,
		},
		Simulation: SimulationConfig{Enabled: true},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Store: StoreConfig{Enabled: true},
	}
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig reads and parses obe.yaml on top of the defaults. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.resolvePaths()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.resolvePaths()
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.resolvePaths()
}

// DataDir returns the per-user data directory, creating it if needed.
func DataDir() (string, error) {
	dir := filepath.Join(xdg.DataHome, AppDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// DefaultConfigPath is where the record command looks for obe.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDir, "obe.yaml")
}

// resolvePaths fills the output root and index path from the XDG data
// directory and makes relative paths absolute.
func (c *Config) resolvePaths() error {
	if c.Session.OutputRoot == "" || (c.Store.Enabled && c.Store.Path == "") {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		if c.Session.OutputRoot == "" {
			c.Session.OutputRoot = dir
		}
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(dir, "sessions.db")
		}
	}

	if !filepath.IsAbs(c.Session.OutputRoot) {
		abs, err := filepath.Abs(c.Session.OutputRoot)
		if err != nil {
			return fmt.Errorf("resolve output root: %w", err)
		}
		c.Session.OutputRoot = abs
	}
	return nil
}
