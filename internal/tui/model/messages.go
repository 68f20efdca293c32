package model

import (
	"time"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
	"watchdash/pkg/logging"
)

// ---- Data messages ----

// SnapshotMsg carries a scheduler update into the UI loop.
type SnapshotMsg struct {
	Update scheduler.Update
}

// UpdatesClosedMsg is sent once the scheduler stops publishing.
type UpdatesClosedMsg struct{}

// NewLogEntryMsg carries a log entry for the status bar.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// TickMsg drives relative timestamps and the fetching indicator.
type TickMsg time.Time

// ClearStatusBarMsg clears the status bar message.
type ClearStatusBarMsg struct{}

// ---- Provider management messages ----

// ProviderMenuMsg is the result of opening the provider menu.
type ProviderMenuMsg struct {
	State   config.ProjectState
	Choices []ProviderChoice
	Err     error
}

// ProviderFieldsMsg delivers the declared fields of the picked provider.
type ProviderFieldsMsg struct {
	Choice ProviderChoice
	Fields []provider.Field
	Stored map[string]string
	Err    error
}

// ProviderSavedMsg reports the outcome of saving a configuration.
type ProviderSavedMsg struct {
	Provider string
	Err      error
}

// ProviderRemovedMsg reports the outcome of removing the configuration.
type ProviderRemovedMsg struct {
	Err error
}

// ---- Misc ----

// URLOpenedMsg reports the outcome of opening a URL in the browser.
type URLOpenedMsg struct {
	URL string
	Err error
}

// PaneDisabledMsg reports the outcome of disabling the dashboard pane.
type PaneDisabledMsg struct {
	Path string
	Err  error
}
