package controller

import (
	"fmt"
	"time"
	"watchdash/internal/scheduler"
	"watchdash/internal/tui/model"
	"watchdash/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	subsystem = "Controller"

	statusShort = 3 * time.Second
	statusLong  = 6 * time.Second
)

// Update is the central message router. It mutates m and returns the
// commands to run next.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg.(type) {
	case spinner.TickMsg, model.TickMsg, tea.MouseMsg, model.NewLogEntryMsg:
	default:
		if m.DebugMode {
			m.Log.Debug(subsystem, "Received msg: %T", msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case tea.MouseMsg:
		return handleMouseMsg(m, msg)

	case model.SnapshotMsg:
		m.ApplyUpdate(msg.Update)
		if m.RefreshPending && !m.Fetching {
			m.RefreshPending = false
			m.RequestRefresh(scheduler.TriggerManual)
		}
		if msg.Update.State == scheduler.StateIdle && msg.Update.Snapshot != nil && m.DebugMode {
			m.Log.Debug(subsystem, "Snapshot %d after %s trigger", msg.Update.Snapshot.Generation, msg.Update.Trigger)
		}
		return m, model.ListenForUpdates(m.Updates)

	case model.UpdatesClosedMsg:
		return m, nil

	case model.NewLogEntryMsg:
		return m, tea.Batch(handleLogEntry(m, msg.Entry), model.ListenForLogs(m.Logs))

	case model.TickMsg:
		m.Now = m.Clock()
		return m, model.TickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		if m.StatusBarClearCancel != nil {
			close(m.StatusBarClearCancel)
			m.StatusBarClearCancel = nil
		}
		return m, nil

	case model.ProviderMenuMsg:
		return handleProviderMenuMsg(m, msg)
	case model.ProviderFieldsMsg:
		return handleProviderFieldsMsg(m, msg)
	case model.ProviderSavedMsg:
		return handleProviderSavedMsg(m, msg)
	case model.ProviderRemovedMsg:
		return handleProviderRemovedMsg(m, msg)

	case model.URLOpenedMsg:
		if msg.Err != nil {
			m.Log.Error(subsystem, msg.Err, "Failed to open %s", msg.URL)
			return m, m.SetStatusMessage("Could not open URL", model.StatusBarError, statusShort)
		}
		return m, nil

	case model.PaneDisabledMsg:
		if msg.Err != nil {
			m.Log.Error(subsystem, msg.Err, "Failed to disable dashboard pane")
			return m, m.SetStatusMessage("Could not disable pane: "+msg.Err.Error(), model.StatusBarError, statusLong)
		}
		m.Log.Info(subsystem, "Dashboard pane disabled in %s", msg.Path)
		return quit(m, fmt.Sprintf("Dashboard pane disabled in %s", msg.Path))
	}

	return m, nil
}

// handleLogEntry surfaces warnings and errors in the status bar.
func handleLogEntry(m *model.Model, entry logging.LogEntry) tea.Cmd {
	switch {
	case entry.Level >= logging.LevelError:
		text := entry.Message
		if entry.Err != nil {
			text += ": " + entry.Err.Error()
		}
		return m.SetStatusMessage(text, model.StatusBarError, statusLong)
	case entry.Level == logging.LevelWarn:
		return m.SetStatusMessage(entry.Message, model.StatusBarWarning, statusLong)
	default:
		return nil
	}
}

func quit(m *model.Model, message string) (*model.Model, tea.Cmd) {
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = message
	return m, tea.Quit
}
