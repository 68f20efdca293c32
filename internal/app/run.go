package app

import (
	"context"
	"fmt"
	"watchdash/internal/scheduler"
	"watchdash/internal/tui/controller"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the background machinery, runs the TUI until the user quits,
// then tears everything down. A fetch still in flight is not awaited.
func (a *Application) Run(ctx context.Context) error {
	defer a.log.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := a.startWatcher()
	var changes <-chan struct{}
	if w != nil {
		changes = w.Events()
		defer w.Stop()
	}

	sched := scheduler.New(scheduler.NewStore(), a.sources, scheduler.Options{
		Interval: a.settings.PollInterval,
		Changes:  changes,
		Log:      a.log,
	})
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			a.log.Error(subsystem, err, "Scheduler stopped")
		}
	}()

	design.Initialize(true)
	m := model.InitializeModel(model.TUIConfig{
		ProjectDir:   a.projectDir,
		ProvidersDir: a.settings.ProvidersDir,
		StatusDir:    a.settings.Agents.Dir,
		Tabs:         a.tabs,
		StaleAfter:   a.settings.Agents.StaleAfter,
		DebugMode:    a.settings.Debug,
		Project:      a.project,
		Runner:       a.runner,
		Refresher:    sched,
		Updates:      sched.Updates(),
		Logs:         a.log.Entries(),
		Logger:       a.log,
	})

	p := controller.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		a.log.Error("TUI-Lifecycle", err, "Error running TUI program")
		return fmt.Errorf("tui: %w", err)
	}
	a.log.Info("TUI-Lifecycle", "TUI exited.")

	if app, ok := final.(controller.AppModel); ok {
		if msg := app.Model().QuittingMessage; msg != "" && msg != controller.QuitMessage {
			fmt.Println(msg)
		}
	}
	return nil
}
