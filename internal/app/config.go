package app

import (
	"time"
	"watchdash/internal/config"
)

// Config holds what the command line hands to the application. Zero values
// leave the corresponding setting untouched.
type Config struct {
	// ProjectDir is the positional argument, empty for auto-detection.
	ProjectDir string

	ProvidersDir string
	Interval     time.Duration
	LogFile      string
	Repo         string
	Debug        bool
	NoWatch      bool
}

// NewConfig creates a new application configuration
func NewConfig(projectDir string) *Config {
	return &Config{ProjectDir: projectDir}
}

// apply layers the command line flags over settings.
func (c *Config) apply(settings config.Settings) (config.Settings, error) {
	if c.ProvidersDir != "" {
		settings.ProvidersDir = c.ProvidersDir
	}
	if c.Interval != 0 {
		settings.PollInterval = c.Interval
	}
	if c.LogFile != "" {
		settings.LogFile = c.LogFile
	}
	if c.Debug {
		settings.Debug = true
	}
	if c.NoWatch {
		settings.Watch.Enabled = false
	}
	return settings, settings.Validate()
}
