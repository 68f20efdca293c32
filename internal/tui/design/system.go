package design

import (
	"hash/fnv"
	"watchdash/internal/status"

	"github.com/charmbracelet/lipgloss"
)

// Spacing units in cells.
const (
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2
	SpaceMD   = 3
)

// Color palette, adaptive for light and dark terminals.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}

	ColorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}

	ColorSurfaceAlt = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#262626"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#404040"}
	ColorHighlight  = lipgloss.AdaptiveColor{Light: "#EEF2FF", Dark: "#312E81"}

	ColorText          = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorTextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorTextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	ColorBackground    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F0F0F"}
)

// CommitPalette colours commit cells so runs of the same commit line up
// visually.
var CommitPalette = []lipgloss.AdaptiveColor{
	{Light: "#B45309", Dark: "#FBBF24"},
	{Light: "#047857", Dark: "#34D399"},
	{Light: "#1D4ED8", Dark: "#60A5FA"},
	{Light: "#BE185D", Dark: "#F472B6"},
	{Light: "#6D28D9", Dark: "#A78BFA"},
	{Light: "#0E7490", Dark: "#22D3EE"},
}

// Text styles.
var (
	TextStyle          = lipgloss.NewStyle().Foreground(ColorText)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	TextSuccessStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)
	TextWarningStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	TextInfoStyle      = lipgloss.NewStyle().Foreground(ColorInfo)
	DimStyle           = lipgloss.NewStyle().Foreground(ColorTextMuted)
	BoldStyle          = lipgloss.NewStyle().Bold(true)
)

// Chrome styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			PaddingRight(SpaceSM)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, SpaceXS)

	TabActiveStyle = TabStyle.
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	TableBorderStyle = lipgloss.NewStyle().Foreground(ColorBorder)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextSecondary)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorHighlight).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurfaceAlt).
			Foreground(ColorText).
			Padding(0, SpaceXS)

	StatusBarSuccessStyle = StatusBarStyle.
				Background(ColorSuccess).
				Foreground(ColorBackground)

	StatusBarErrorStyle = StatusBarStyle.
				Background(ColorError).
				Foreground(ColorBackground)

	StatusBarWarningStyle = StatusBarStyle.
				Background(ColorWarning).
				Foreground(ColorBackground)

	StatusBarInfoStyle = StatusBarStyle.
				Background(ColorInfo).
				Foreground(ColorBackground)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, SpaceXS)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorPrimary)

	CardStaleStyle = CardStyle.
			BorderForeground(ColorWarning)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(SpaceXS, SpaceSM)

	InputLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	InputFocusedLabelStyle = InputLabelStyle.Foreground(ColorPrimary)
)

// StatusStyle is the style of a canonical status cell.
func StatusStyle(s status.Status) lipgloss.Style {
	switch s {
	case status.Live:
		return TextSuccessStyle
	case status.Failed:
		return TextErrorStyle
	case status.Building, status.Deploying:
		return TextWarningStyle
	case status.Pending:
		return TextInfoStyle
	case status.Cancelled:
		return DimStyle
	default:
		return TextSecondaryStyle
	}
}

// StatusIcon is a one-cell glyph for a canonical status.
func StatusIcon(s status.Status) string {
	switch s {
	case status.Live:
		return "✓"
	case status.Failed:
		return "✗"
	case status.Building, status.Deploying:
		return "●"
	case status.Pending:
		return "○"
	case status.Cancelled:
		return "-"
	default:
		return "?"
	}
}

// CommitStyle returns a stable colour for a commit id.
func CommitStyle(sha string) lipgloss.Style {
	if sha == "" {
		return DimStyle
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(sha))
	c := CommitPalette[h.Sum32()%uint32(len(CommitPalette))]
	return lipgloss.NewStyle().Foreground(c)
}

// Initialize sets up the design system.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}
