package model

import (
	"time"
	"watchdash/internal/agents"
	"watchdash/internal/config"
	"watchdash/internal/scheduler"
	"watchdash/internal/status"
	"watchdash/internal/tui/design"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InitializeModel creates the model for cfg. Tabs keep the order of
// cfg.Tabs; unknown keys are ignored and an empty list falls back to the
// deploys tab.
func InitializeModel(cfg TUIConfig) *Model {
	clock := cfg.Now
	if clock == nil {
		clock = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(design.ColorPrimary)

	m := &Model{
		CurrentAppMode: ModeList,
		LastAppMode:    ModeList,
		DebugMode:      cfg.DebugMode,
		ProjectDir:     cfg.ProjectDir,
		ProvidersDir:   cfg.ProvidersDir,
		StatusDir:      cfg.StatusDir,
		StaleAfter:     cfg.StaleAfter,
		Snapshot:       &scheduler.Snapshot{Sources: map[string]scheduler.SourceState{}},
		Now:            clock(),
		Clock:          clock,
		Detail:         viewport.New(0, 0),
		Spinner:        s,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		Project:        cfg.Project,
		Runner:         cfg.Runner,
		Refresher:      cfg.Refresher,
		Updates:        cfg.Updates,
		Logs:           cfg.Logs,
		Log:            cfg.Logger,
	}
	for _, key := range cfg.Tabs {
		if tab := NewTab(key); tab != nil {
			m.Tabs = append(m.Tabs, tab)
		}
	}
	if len(m.Tabs) == 0 {
		m.Tabs = []*Tab{NewTab(config.TabDeploys)}
	}
	return m
}

// Init implements the tea.Model contract for the wrapper.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		TickCmd(),
		ListenForUpdates(m.Updates),
		ListenForLogs(m.Logs),
	)
}

// CurrentTab returns the active tab.
func (m *Model) CurrentTab() *Tab {
	return m.Tabs[m.ActiveTab]
}

// Source returns the last known state of key.
func (m *Model) Source(key string) scheduler.SourceState {
	return m.Snapshot.Source(key)
}

// Records returns the records shown on tab.
func (m *Model) Records(tab *Tab) []status.Record {
	return m.Source(tab.Key).Records
}

// Agents returns the agents shown on the agents tab.
func (m *Model) Agents() []agents.Agent {
	return m.Source(config.TabAgents).Agents
}

// RowCount is the number of selectable items on tab.
func (m *Model) RowCount(tab *Tab) int {
	if tab.Cards() {
		return len(m.Agents())
	}
	return len(m.Records(tab))
}

// SelectedRecord returns the selected record of the active table tab.
func (m *Model) SelectedRecord() (status.Record, bool) {
	tab := m.CurrentTab()
	if tab.Cards() {
		return status.Record{}, false
	}
	records := m.Records(tab)
	if tab.View.Selected >= len(records) {
		return status.Record{}, false
	}
	return records[tab.View.Selected], true
}

// SelectedAgent returns the selected agent of the agents tab.
func (m *Model) SelectedAgent() (agents.Agent, bool) {
	tab := m.CurrentTab()
	if !tab.Cards() {
		return agents.Agent{}, false
	}
	list := m.Agents()
	if tab.View.Selected >= len(list) {
		return agents.Agent{}, false
	}
	return list[tab.View.Selected], true
}

// SelectedURL returns the deep link of the selection, if any.
func (m *Model) SelectedURL() string {
	if rec, ok := m.SelectedRecord(); ok {
		return rec.URL
	}
	return ""
}

// Resize records the terminal size and re-validates every viewport.
func (m *Model) Resize(width, height int) {
	m.Width, m.Height = width, height
	for _, tab := range m.Tabs {
		if tab.Cards() {
			tab.View.SetVisible(CardGeometry(width, height).Visible)
		} else {
			tab.View.SetVisible(TableVisibleRows(height))
		}
	}
	m.Detail.Width = width
	m.Detail.Height = height - HeaderRows - FooterRows
	m.Help.Width = width
}

// ApplyUpdate installs a scheduler update.
func (m *Model) ApplyUpdate(u scheduler.Update) {
	if u.Snapshot != nil {
		m.Snapshot = u.Snapshot
	}
	m.Fetching = u.State == scheduler.StateFetching
	m.LastTrigger = u.Trigger
	for _, tab := range m.Tabs {
		tab.View.SetCount(m.RowCount(tab))
	}
}

// LastUpdated is the most recent successful fetch of any shown source.
func (m *Model) LastUpdated() time.Time {
	var latest time.Time
	for _, tab := range m.Tabs {
		if t := m.Source(tab.Key).UpdatedAt; t.After(latest) {
			latest = t
		}
	}
	return latest
}

// RequestRefresh asks the scheduler for a fetch.
func (m *Model) RequestRefresh(t scheduler.Trigger) {
	if m.Refresher != nil {
		m.Refresher.Request(t)
	}
}

// RequestRefreshAfterChange refreshes now, or once the current fetch ends
// when one is in flight. Triggers sent mid-fetch are coalesced away, and a
// config change must not be.
func (m *Model) RequestRefreshAfterChange() {
	if m.Fetching {
		m.RefreshPending = true
		return
	}
	m.RequestRefresh(scheduler.TriggerManual)
}

// SetStatusMessage updates the status bar message
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}
