package model

import (
	"context"
	"runtime"
	"time"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
	"watchdash/internal/utils"
	"watchdash/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// TickInterval is the period of the render tick.
const TickInterval = time.Second

const openTimeout = 5 * time.Second

// ListenForUpdates waits for the next scheduler update. The controller
// re-issues it after every SnapshotMsg.
func ListenForUpdates(ch <-chan scheduler.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return UpdatesClosedMsg{}
		}
		return SnapshotMsg{Update: u}
	}
}

// ListenForLogs waits for the next log entry. It returns nil once the
// channel is closed.
func ListenForLogs(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// TickCmd schedules the next render tick.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// OpenProviderMenuCmd loads the project state and the installed plugins
// with their display names.
func OpenProviderMenuCmd(store *config.ProjectStore, runner *provider.Runner, dir string) tea.Cmd {
	return func() tea.Msg {
		state, err := store.Load()
		if err != nil {
			return ProviderMenuMsg{Err: err}
		}
		descs, err := provider.Discover(dir)
		if err != nil {
			return ProviderMenuMsg{State: state, Err: err}
		}
		choices := make([]ProviderChoice, 0, len(descs))
		for _, d := range descs {
			label, err := runner.Name(context.Background(), d)
			if err != nil {
				label = d.Name
			}
			choices = append(choices, ProviderChoice{Descriptor: d, Label: label})
		}
		return ProviderMenuMsg{State: state, Choices: choices}
	}
}

// LoadProviderFieldsCmd asks the picked plugin for its configuration
// fields and pairs them with the stored values.
func LoadProviderFieldsCmd(runner *provider.Runner, choice ProviderChoice, state config.ProjectState) tea.Cmd {
	return func() tea.Msg {
		fields, err := runner.Config(context.Background(), choice.Descriptor)
		return ProviderFieldsMsg{
			Choice: choice,
			Fields: fields,
			Stored: state.ValuesFor(choice.Descriptor.Name),
			Err:    err,
		}
	}
}

// SaveProviderCmd selects name with values and writes the state file. The
// file is re-read first so concurrent edits to other sections survive.
func SaveProviderCmd(store *config.ProjectStore, name string, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		state, err := store.Load()
		if err != nil {
			return ProviderSavedMsg{Provider: name, Err: err}
		}
		state.SelectProvider(name, values)
		return ProviderSavedMsg{Provider: name, Err: store.Save(state)}
	}
}

// RemoveProviderCmd drops the provider selection. The state file is
// deleted once nothing else is left in it.
func RemoveProviderCmd(store *config.ProjectStore) tea.Cmd {
	return func() tea.Msg {
		state, err := store.Load()
		if err != nil {
			return ProviderRemovedMsg{Err: err}
		}
		state.ClearProvider()
		return ProviderRemovedMsg{Err: store.Save(state)}
	}
}

// OpenURLCmd opens url with the platform opener.
func OpenURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		_, err := utils.Run(context.Background(), utils.ExecOptions{Timeout: openTimeout}, []string{opener(), url})
		return URLOpenedMsg{URL: url, Err: err}
	}
}

func opener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// DisablePaneCmd writes the pane-disable marker for dir.
func DisablePaneCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := config.DisablePane(dir)
		return PaneDisabledMsg{Path: path, Err: err}
	}
}
