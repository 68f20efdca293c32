package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	"watchdash/internal/config"
	"watchdash/internal/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigApply(t *testing.T) {
	base := config.DefaultSettings()

	tests := []struct {
		name    string
		cfg     Config
		check   func(t *testing.T, s config.Settings)
		wantErr bool
	}{
		{
			name: "zero config keeps settings",
			cfg:  Config{},
			check: func(t *testing.T, s config.Settings) {
				assert.Equal(t, base, s)
			},
		},
		{
			name: "flags override",
			cfg:  Config{ProvidersDir: "/opt/p", Interval: 5 * time.Second, LogFile: "/tmp/x.log", Debug: true, NoWatch: true},
			check: func(t *testing.T, s config.Settings) {
				assert.Equal(t, "/opt/p", s.ProvidersDir)
				assert.Equal(t, 5*time.Second, s.PollInterval)
				assert.Equal(t, "/tmp/x.log", s.LogFile)
				assert.True(t, s.Debug)
				assert.False(t, s.Watch.Enabled)
			},
		},
		{
			name:    "negative interval rejected",
			cfg:     Config{Interval: -time.Second},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.apply(base)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidSettings)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestEnabledTabs(t *testing.T) {
	tests := []struct {
		name string
		tabs map[string]config.TabConfig
		want []string
	}{
		{"defaults", nil, []string{config.TabDeploys, config.TabActions, config.TabAgents}},
		{
			"actions off",
			map[string]config.TabConfig{config.TabActions: {Enabled: boolPtr(false)}},
			[]string{config.TabDeploys, config.TabAgents},
		},
		{
			"all off falls back to deploys",
			map[string]config.TabConfig{
				config.TabDeploys: {Enabled: boolPtr(false)},
				config.TabActions: {Enabled: boolPtr(false)},
				config.TabAgents:  {Enabled: boolPtr(false)},
			},
			[]string{config.TabDeploys},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enabledTabs(config.ProjectState{Tabs: tt.tabs}))
		})
	}
}

func newTestApplication(t *testing.T, cfg *Config, state config.ProjectState) (*Application, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	require.NoError(t, config.NewProjectStore(project).Save(state))

	cfg.ProjectDir = project
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "watchdash.log")
	cfg.ProvidersDir = t.TempDir()
	a, err := NewApplication(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.log.Close() })
	return a, project
}

func TestNewApplicationBuildsEnabledSources(t *testing.T) {
	state := config.ProjectState{Tabs: map[string]config.TabConfig{
		config.TabActions: {Repo: "acme/from-state"},
		config.TabAgents:  {Enabled: boolPtr(false)},
	}}
	a, project := newTestApplication(t, &Config{Repo: "acme/from-flag"}, state)

	assert.Equal(t, project, a.projectDir)
	assert.Equal(t, []string{config.TabDeploys, config.TabActions}, a.tabs)
	require.Len(t, a.sources, 2)
	assert.Equal(t, sources.KeyDeploys, a.sources[0].Key())

	act, ok := a.sources[1].(*sources.Actions)
	require.True(t, ok)
	assert.Equal(t, "acme/from-flag", act.Repo, "flag beats the state file")

	_, err := os.Stat(a.settings.LogFile)
	assert.NoError(t, err, "log file is created")
}

func TestWatchPaths(t *testing.T) {
	a, project := newTestApplication(t, &Config{}, config.ProjectState{Provider: "render"})

	assert.Equal(t, []string{a.project.Path()}, a.watchPaths(), "only existing paths are watched")

	refs := filepath.Join(project, ".git", "refs", "remotes")
	agentsDir := filepath.Join(project, a.settings.Agents.Dir)
	require.NoError(t, os.MkdirAll(refs, 0o755))
	require.NoError(t, os.MkdirAll(agentsDir, 0o755))

	got := a.watchPaths()
	assert.Contains(t, got, refs)
	assert.Contains(t, got, agentsDir)
	assert.Contains(t, got, a.project.Path())
}

func TestStartWatcherDisabled(t *testing.T) {
	a, _ := newTestApplication(t, &Config{NoWatch: true}, config.ProjectState{Provider: "render"})
	assert.Nil(t, a.startWatcher())
}

func TestStartWatcherMissingBinary(t *testing.T) {
	a, _ := newTestApplication(t, &Config{}, config.ProjectState{Provider: "render"})
	a.settings.Watch.Binary = "definitely-not-a-real-fswatch"
	assert.Nil(t, a.startWatcher())
}
