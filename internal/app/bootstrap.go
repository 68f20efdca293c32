package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"watchdash/internal/actions"
	"watchdash/internal/agents"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
	"watchdash/internal/sources"
	"watchdash/internal/status"
	"watchdash/internal/watcher"
	"watchdash/pkg/logging"
)

const subsystem = "Bootstrap"

// Application is the main application structure that bootstraps and runs
// the dashboard.
type Application struct {
	config   *Config
	settings config.Settings

	projectDir string
	log        *logging.Logger
	project    *config.ProjectStore
	runner     *provider.Runner
	tabs       []string
	sources    []scheduler.Source
}

// NewApplication resolves the project, loads the settings and builds every
// component that does not need a running context.
func NewApplication(ctx context.Context, cfg *Config) (*Application, error) {
	projectDir, err := config.ResolveProjectDir(ctx, cfg.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	settings, err := config.LoadSettings(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings, err = cfg.apply(settings); err != nil {
		return nil, err
	}

	log, err := newLogger(settings)
	if err != nil {
		return nil, err
	}
	log.Info(subsystem, "Starting for project %s (providers in %s)", projectDir, settings.ProvidersDir)

	a := &Application{
		config:     cfg,
		settings:   settings,
		projectDir: projectDir,
		log:        log,
		project:    config.NewProjectStore(projectDir),
	}

	mapper := status.NewMapper()
	a.runner = provider.NewRunner(provider.Options{
		IntrospectTimeout: settings.Timeouts.Introspect,
		ListTimeout:       settings.Timeouts.List,
		EnvPrefix:         settings.EnvPrefix,
		Dir:               projectDir,
	}, mapper, log)

	state, err := a.project.Load()
	if err != nil {
		// The deploys tab reports the broken file on every fetch.
		log.Warn(subsystem, "Project state unreadable, using defaults: %v", err)
	}
	a.tabs = enabledTabs(state)
	a.sources = a.buildSources(ctx, state, mapper)
	return a, nil
}

func newLogger(settings config.Settings) (*logging.Logger, error) {
	level := logging.LevelInfo
	if settings.Debug {
		level = logging.LevelDebug
	}
	f, err := logging.OpenFile(settings.LogFile)
	if err != nil {
		return nil, err
	}
	log := logging.NewWithEntries(f, level, logging.LevelWarn, 0)
	log.Attach(f)
	return log, nil
}

// enabledTabs lists the switched on tabs in display order. With every tab
// disabled the deploys tab is shown anyway.
func enabledTabs(state config.ProjectState) []string {
	var tabs []string
	for _, tab := range []string{config.TabDeploys, config.TabActions, config.TabAgents} {
		if state.TabEnabled(tab) {
			tabs = append(tabs, tab)
		}
	}
	if len(tabs) == 0 {
		return []string{config.TabDeploys}
	}
	return tabs
}

func (a *Application) buildSources(ctx context.Context, state config.ProjectState, mapper *status.Mapper) []scheduler.Source {
	var out []scheduler.Source
	for _, tab := range a.tabs {
		switch tab {
		case config.TabDeploys:
			out = append(out, &sources.Deploys{Project: a.project, ProvidersDir: a.settings.ProvidersDir, Runner: a.runner})
		case config.TabActions:
			repo := state.TabRepo(config.TabActions)
			if a.config.Repo != "" {
				repo = a.config.Repo
			}
			cli := actions.CLIFetcher{Dir: a.projectDir, Timeout: a.settings.Actions.Timeout}
			out = append(out, sources.NewActions(ctx, a.projectDir, repo, a.settings.Actions.Limit, a.settings.Actions.TokenEnv, cli, mapper, a.log))
		case config.TabAgents:
			out = append(out, &sources.Agents{ProjectDir: a.projectDir, StatusDir: a.settings.Agents.Dir})
		}
	}
	return out
}

// watchPaths lists what the change watcher should observe: fetched refs,
// the state file and every agent status directory.
func (a *Application) watchPaths() []string {
	candidates := []string{
		filepath.Join(a.projectDir, ".git", "refs", "remotes"),
		a.project.Path(),
	}
	for _, tab := range a.tabs {
		if tab == config.TabAgents {
			candidates = append(candidates, agents.StatusDirs(a.projectDir, a.settings.Agents.Dir)...)
		}
	}
	return watcher.ExistingPaths(candidates...)
}

// startWatcher returns nil when change notification is off or unavailable;
// the scheduler then polls only.
func (a *Application) startWatcher() *watcher.Watcher {
	if !a.settings.Watch.Enabled {
		a.log.Info(subsystem, "Change watching disabled")
		return nil
	}
	w, err := watcher.Start(watcher.Options{
		Binary:  a.settings.Watch.Binary,
		Latency: a.settings.Watch.Latency,
		Paths:   a.watchPaths(),
		Log:     a.log,
	})
	if err != nil {
		if errors.Is(err, watcher.ErrNoChangeSource) {
			a.log.Info(subsystem, "Polling only: %v", err)
		} else {
			a.log.Warn(subsystem, "Change watcher failed, polling only: %v", err)
		}
		return nil
	}
	return w
}
