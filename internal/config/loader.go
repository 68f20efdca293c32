package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osExecutable = os.Executable

const (
	userConfigDir    = ".config/watchdash"
	projectConfigDir = ".watchdash"
	configFileName   = "config.yaml"
)

// ErrInvalidSettings is wrapped by Validate failures.
var ErrInvalidSettings = errors.New("invalid settings")

// LoadSettings layers the defaults, the user file and the project file
// under projectDir. Missing files are skipped; unreadable or malformed ones
// are errors.
func LoadSettings(projectDir string) (Settings, error) {
	settings := DefaultSettings()

	userConfigPath, err := getUserConfigPath()
	if err == nil {
		if settings, err = overlayFromFile(settings, userConfigPath); err != nil {
			return Settings{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	projectConfigPath := getProjectConfigPath(projectDir)
	if settings, err = overlayFromFile(settings, projectConfigPath); err != nil {
		return Settings{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	settings.ProvidersDir = expandHome(settings.ProvidersDir)
	settings.LogFile = expandHome(settings.LogFile)
	return settings, settings.Validate()
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func(projectDir string) string {
	return filepath.Join(projectDir, projectConfigDir, configFileName)
}

// overlayFromFile decodes the YAML file at path on top of base. Keys absent
// from the file keep their base value.
func overlayFromFile(base Settings, path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}
	merged := base
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return base, err
	}
	return merged, nil
}

// Validate rejects settings the scheduler and plugin runner cannot work with.
func (s Settings) Validate() error {
	var problems []string
	if s.PollInterval <= 0 {
		problems = append(problems, "pollInterval must be positive")
	}
	if s.Timeouts.Introspect <= 0 || s.Timeouts.List <= 0 {
		problems = append(problems, "timeouts must be positive")
	}
	if s.EnvPrefix == "" || strings.ToUpper(s.EnvPrefix) != s.EnvPrefix {
		problems = append(problems, "envPrefix must be non-empty and uppercase")
	}
	if s.Actions.Limit <= 0 {
		problems = append(problems, "actions.limit must be positive")
	}
	if s.Agents.StaleAfter <= 0 {
		problems = append(problems, "agents.staleAfter must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := osUserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
