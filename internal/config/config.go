// Package config loads the harness run configuration from
// ~/.config/xrcheck/config.yaml, filling in defaults for missing fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "xrcheck", "config.yaml"), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Version:    1,
		Runtime:    "fake",
		ViewConfig: "stereo",
		Timeouts: Timeouts{
			Transition:  Duration(30 * time.Second),
			Event:       Duration(time.Second),
			NoEvent:     Duration(time.Second),
			Interval:    Duration(5 * time.Millisecond),
			IllegalCall: Duration(100 * time.Millisecond),
		},
	}
}

// Load reads the configuration from the given path, or from ConfigPath()
// when path is empty. A missing file yields the defaults, not an error;
// invalid yaml is an error.
func Load(path string) (Config, error) {
	var err error
	if path == "" {
		path, err = ConfigPath()
		if err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return applyDefaults(cfg), nil
}

// applyDefaults fills in missing fields with default values.
func applyDefaults(cfg Config) Config {
	defaults := Default()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}
	if cfg.Runtime == "" {
		cfg.Runtime = defaults.Runtime
	}
	if cfg.ViewConfig == "" {
		cfg.ViewConfig = defaults.ViewConfig
	}
	if cfg.Timeouts.Transition == 0 {
		cfg.Timeouts.Transition = defaults.Timeouts.Transition
	}
	if cfg.Timeouts.Event == 0 {
		cfg.Timeouts.Event = defaults.Timeouts.Event
	}
	if cfg.Timeouts.NoEvent == 0 {
		cfg.Timeouts.NoEvent = defaults.Timeouts.NoEvent
	}
	if cfg.Timeouts.Interval == 0 {
		cfg.Timeouts.Interval = defaults.Timeouts.Interval
	}
	if cfg.Timeouts.IllegalCall == 0 {
		cfg.Timeouts.IllegalCall = defaults.Timeouts.IllegalCall
	}

	return cfg
}

// Write saves a configuration to the default path, creating the directory
// if needed.
func Write(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
