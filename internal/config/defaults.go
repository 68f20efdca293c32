package config

import (
	"os"
	"path/filepath"
	"time"
)

const defaultProvidersSubdir = "providers"

// DefaultSettings returns the built-in configuration layer.
func DefaultSettings() Settings {
	return Settings{
		PollInterval: 30 * time.Second,
		ProvidersDir: defaultProvidersDir(),
		Timeouts: TimeoutConfig{
			Introspect: 5 * time.Second,
			List:       30 * time.Second,
		},
		EnvPrefix: "DEPLOY_WATCH_",
		Watch: WatchConfig{
			Enabled: true,
			Binary:  "fswatch",
			Latency: 1,
		},
		Actions: ActionsConfig{
			Limit:    15,
			TokenEnv: "GITHUB_TOKEN",
			Timeout:  30 * time.Second,
		},
		Agents: AgentsConfig{
			Dir:        ".agent-status.d",
			StaleAfter: 180 * time.Second,
		},
		LogFile: filepath.Join(os.TempDir(), "watchdash.log"),
	}
}

// defaultProvidersDir prefers a providers directory shipped next to the
// binary, then the user config directory.
func defaultProvidersDir() string {
	if exe, err := osExecutable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), defaultProvidersSubdir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if dir, err := GetUserConfigDir(); err == nil {
		return filepath.Join(dir, defaultProvidersSubdir)
	}
	return defaultProvidersSubdir
}
