package controller

import (
	"watchdash/internal/scheduler"
	"watchdash/internal/tui/model"
	"watchdash/internal/tui/view"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// QuitMessage is shown while the program shuts down after a plain quit.
const QuitMessage = "Shutting down..."

func handleKeyMsg(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch m.CurrentAppMode {
	case model.ModeList:
		return handleListKey(m, msg)
	case model.ModeDetail:
		return handleDetailKey(m, msg)
	case model.ModeHelp:
		return handleHelpKey(m, msg)
	case model.ModeProviderSelect:
		return handleProviderSelectKey(m, msg)
	case model.ModeProviderConfigure:
		return handleProviderConfigureKey(m, msg)
	case model.ModeProviderManage:
		return handleProviderManageKey(m, msg)
	default:
		return m, nil
	}
}

func handleListKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	tab := m.CurrentTab()
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return quit(m, QuitMessage)
	case key.Matches(msg, m.Keys.Help):
		m.LastAppMode = model.ModeList
		m.CurrentAppMode = model.ModeHelp
	case key.Matches(msg, m.Keys.Refresh):
		m.RequestRefresh(scheduler.TriggerManual)
		return m, m.SetStatusMessage("Refreshing...", model.StatusBarInfo, statusShort)
	case key.Matches(msg, m.Keys.Up):
		tab.View.Move(-1)
	case key.Matches(msg, m.Keys.Down):
		tab.View.Move(1)
	case key.Matches(msg, m.Keys.PageUp):
		tab.View.Page(-1)
	case key.Matches(msg, m.Keys.PageDown):
		tab.View.Page(1)
	case key.Matches(msg, m.Keys.Top):
		tab.View.Top()
	case key.Matches(msg, m.Keys.Bottom):
		tab.View.Bottom()
	case key.Matches(msg, m.Keys.NextTab):
		switchTab(m, 1)
	case key.Matches(msg, m.Keys.PrevTab):
		switchTab(m, -1)
	case key.Matches(msg, m.Keys.Enter):
		openDetail(m)
	case key.Matches(msg, m.Keys.Open):
		return m, openSelectedURL(m)
	case key.Matches(msg, m.Keys.Copy):
		return m, copySelectedURL(m)
	case key.Matches(msg, m.Keys.ResetWidths):
		if tab.Table != nil && tab.Table.HasOverrides() {
			tab.Table.Reset()
			return m, m.SetStatusMessage("Column widths reset", model.StatusBarInfo, statusShort)
		}
	case key.Matches(msg, m.Keys.Providers):
		if m.Project == nil || m.Runner == nil {
			return m, nil
		}
		return m, model.OpenProviderMenuCmd(m.Project, m.Runner, m.ProvidersDir)
	case key.Matches(msg, m.Keys.DisablePane):
		return m, model.DisablePaneCmd(m.ProjectDir)
	}
	return m, nil
}

func switchTab(m *model.Model, delta int) {
	n := len(m.Tabs)
	if t := m.CurrentTab().Table; t != nil {
		t.CancelDrag()
	}
	m.ActiveTab = ((m.ActiveTab+delta)%n + n) % n
}

func openDetail(m *model.Model) {
	var content string
	if rec, ok := m.SelectedRecord(); ok {
		content = view.RecordDetail(rec, m.CurrentTab().Key, m.Now)
	} else if a, ok := m.SelectedAgent(); ok {
		content = view.AgentDetail(a, m.Now, m.StaleAfter)
	} else {
		return
	}
	m.Detail.SetContent(content)
	m.Detail.GotoTop()
	m.CurrentAppMode = model.ModeDetail
}

func openSelectedURL(m *model.Model) tea.Cmd {
	url := m.SelectedURL()
	if url == "" {
		return m.SetStatusMessage("No URL for this row", model.StatusBarWarning, statusShort)
	}
	return model.OpenURLCmd(url)
}

func copySelectedURL(m *model.Model) tea.Cmd {
	url := m.SelectedURL()
	if url == "" {
		return m.SetStatusMessage("No URL for this row", model.StatusBarWarning, statusShort)
	}
	if err := writeClipboard(url); err != nil {
		m.Log.Error(subsystem, err, "Failed to copy URL")
		return m.SetStatusMessage("Copy failed", model.StatusBarError, statusShort)
	}
	return m.SetStatusMessage("Copied "+url, model.StatusBarSuccess, statusShort)
}

func handleDetailKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return quit(m, QuitMessage)
	case key.Matches(msg, m.Keys.Esc), key.Matches(msg, m.Keys.Enter), msg.String() == "backspace":
		m.CurrentAppMode = model.ModeList
	case key.Matches(msg, m.Keys.Help):
		m.LastAppMode = model.ModeDetail
		m.CurrentAppMode = model.ModeHelp
	case key.Matches(msg, m.Keys.Open):
		return m, openSelectedURL(m)
	case key.Matches(msg, m.Keys.Copy):
		return m, copySelectedURL(m)
	default:
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func handleHelpKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return quit(m, QuitMessage)
	}
	m.CurrentAppMode = m.LastAppMode
	return m, nil
}
