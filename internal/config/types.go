package config

import "time"

// Settings is the process-wide configuration, built once at startup and
// passed down.
type Settings struct {
	PollInterval time.Duration `yaml:"pollInterval"`
	ProvidersDir string        `yaml:"providersDir"`
	Timeouts     TimeoutConfig `yaml:"timeouts"`
	EnvPrefix    string        `yaml:"envPrefix"`
	Watch        WatchConfig   `yaml:"watch"`
	Actions      ActionsConfig `yaml:"actions"`
	Agents       AgentsConfig  `yaml:"agents"`
	LogFile      string        `yaml:"logFile,omitempty"`
	Debug        bool          `yaml:"debug,omitempty"`
}

// TimeoutConfig bounds plugin invocations.
type TimeoutConfig struct {
	Introspect time.Duration `yaml:"introspect"`
	List       time.Duration `yaml:"list"`
}

// WatchConfig configures the external change notifier.
type WatchConfig struct {
	Enabled bool    `yaml:"enabled"`
	Binary  string  `yaml:"binary"`
	Latency float64 `yaml:"latency"`
}

// ActionsConfig configures the GitHub Actions tab.
type ActionsConfig struct {
	Limit    int           `yaml:"limit"`
	TokenEnv string        `yaml:"tokenEnv"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AgentsConfig configures the agent status tab.
type AgentsConfig struct {
	Dir        string        `yaml:"dir"`
	StaleAfter time.Duration `yaml:"staleAfter"`
}
