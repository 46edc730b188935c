package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from yaml strings such as
// "30s" or "5ms".
type Duration time.Duration

// UnmarshalYAML implements custom unmarshaling for Duration to accept both
// duration strings and bare nanosecond integers.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err == nil {
		parsed, err := time.ParseDuration(str)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", str, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := value.Decode(&ns); err != nil {
		return err
	}
	*d = Duration(ns)
	return nil
}

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Timeouts bounds the harness's polling loops. Each field names one polarity
// of waiting; no loop may run unbounded.
type Timeouts struct {
	// Transition is the budget for a staged state transition to be reached
	// while pumping frames. Real runtimes may legitimately take far longer
	// to reach a state than to surface a queued event.
	Transition Duration `yaml:"transition"`

	// Event is the budget for the next queued state-change event to
	// surface.
	Event Duration `yaml:"event"`

	// NoEvent is the window during which the absence of a state-change
	// event is asserted. A timeout here is the successful outcome.
	NoEvent Duration `yaml:"no_event"`

	// Interval is the sleep between non-blocking polls.
	Interval Duration `yaml:"interval"`

	// IllegalCall is the latency bound for a rejected lifecycle call.
	// Illegal wait-frame must report not-running without blocking.
	IllegalCall Duration `yaml:"illegal_call"`
}

// Config is the run configuration loaded from the config file, with flag
// overrides applied on top. Scenarios receive it explicitly; there is no
// ambient global configuration.
type Config struct {
	Version    int      `yaml:"version"`
	Runtime    string   `yaml:"runtime"`
	ViewConfig string   `yaml:"view_config"`
	Headless   bool     `yaml:"headless"`
	Database   string   `yaml:"database"`
	Timeouts   Timeouts `yaml:"timeouts"`
}
