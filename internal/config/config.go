// Package config loads hub/server settings from an optional YAML file.
// Flags passed on the command line win over file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML document. Durations are strings in the file
// ("7s", "100ms") and parsed into Config.
type File struct {
	Addr        string `yaml:"addr"`
	DataDir     string `yaml:"dataDir"`
	LogLevel    string `yaml:"logLevel"`
	SolveBudget string `yaml:"solveBudget"`
	ReplayDelay string `yaml:"replayDelay"`
	HubURL      string `yaml:"hubURL"`
}

// Config is the resolved runtime configuration.
type Config struct {
	Addr        string
	DataDir     string
	LogLevel    string
	SolveBudget time.Duration
	ReplayDelay time.Duration
	HubURL      string
}

// Default matches the original client: a 7 second solve watchdog and a
// 100ms (1x speed) animation delay.
func Default() Config {
	return Config{
		Addr:        ":8080",
		DataDir:     "./data",
		LogLevel:    "info",
		SolveBudget: 7 * time.Second,
		ReplayDelay: 100 * time.Millisecond,
		HubURL:      "ws://127.0.0.1:8080/ws",
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Addr != "" {
		cfg.Addr = f.Addr
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.HubURL != "" {
		cfg.HubURL = f.HubURL
	}
	if f.SolveBudget != "" {
		d, err := time.ParseDuration(f.SolveBudget)
		if err != nil {
			return cfg, fmt.Errorf("solveBudget: %w", err)
		}
		cfg.SolveBudget = d
	}
	if f.ReplayDelay != "" {
		d, err := time.ParseDuration(f.ReplayDelay)
		if err != nil {
			return cfg, fmt.Errorf("replayDelay: %w", err)
		}
		cfg.ReplayDelay = d
	}
	return cfg, nil
}
