package model

import (
	"time"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
	"watchdash/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
)

// AppMode is the state of the input controller.
type AppMode int

const (
	ModeList AppMode = iota
	ModeDetail
	ModeHelp
	ModeProviderSelect
	ModeProviderConfigure
	ModeProviderManage
	ModeQuitting
)

// String provides a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeList:
		return "List"
	case ModeDetail:
		return "Detail"
	case ModeHelp:
		return "Help"
	case ModeProviderSelect:
		return "ProviderSelect"
	case ModeProviderConfigure:
		return "ProviderConfigure"
	case ModeProviderManage:
		return "ProviderManage"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// ListLevel reports whether quit is accepted in this mode.
func (m AppMode) ListLevel() bool {
	return m == ModeList || m == ModeDetail || m == ModeHelp
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Refresher accepts fetch requests. *scheduler.Scheduler implements it.
type Refresher interface {
	Request(t scheduler.Trigger)
}

// TUIConfig carries everything the model needs from the bootstrap.
type TUIConfig struct {
	ProjectDir   string
	ProvidersDir string
	StatusDir    string
	Tabs         []string
	StaleAfter   time.Duration
	DebugMode    bool

	Project   *config.ProjectStore
	Runner    *provider.Runner
	Refresher Refresher
	Updates   <-chan scheduler.Update
	Logs      <-chan logging.LogEntry
	Logger    *logging.Logger

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Model is the whole TUI state. It is mutated only by the controller.
type Model struct {
	Width  int
	Height int

	CurrentAppMode  AppMode
	LastAppMode     AppMode
	DebugMode       bool
	QuittingMessage string

	ProjectDir   string
	ProvidersDir string
	StatusDir    string
	StaleAfter   time.Duration

	Tabs      []*Tab
	ActiveTab int

	Snapshot    *scheduler.Snapshot
	LastTrigger scheduler.Trigger
	Now         time.Time
	Fetching    bool

	// RefreshPending holds a config-change refresh until the fetch in flight ends.
	RefreshPending bool

	// Provider management.
	ProviderState   config.ProjectState
	ProviderChoices []ProviderChoice
	ProviderCursor  int
	Form            *ProviderForm
	ProviderError   string

	Detail  viewport.Model
	Spinner spinner.Model
	Keys    KeyMap
	Help    help.Model
	Clock   func() time.Time

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	Project   *config.ProjectStore
	Runner    *provider.Runner
	Refresher Refresher
	Updates   <-chan scheduler.Update
	Logs      <-chan logging.LogEntry
	Log       *logging.Logger
}

// ProviderChoice is one entry of the provider picker.
type ProviderChoice struct {
	Descriptor provider.Descriptor
	Label      string
}
