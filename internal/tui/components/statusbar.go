package components

import (
	"strings"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/model"
	"watchdash/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	Width       int
	Message     string
	MessageType model.MessageType
	LeftText    string
	RightText   string
	ShowMessage bool
}

// NewStatusBar creates a new status bar
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{Width: width}
}

// WithMessage sets a status message
func (s *StatusBar) WithMessage(message string, msgType model.MessageType) *StatusBar {
	s.Message = message
	s.MessageType = msgType
	s.ShowMessage = message != ""
	return s
}

// WithLeftText sets the left side text
func (s *StatusBar) WithLeftText(text string) *StatusBar {
	s.LeftText = text
	return s
}

// WithRightText sets the right side text
func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.RightText = text
	return s
}

// Render returns the styled status bar, one line of exactly Width cells.
func (s *StatusBar) Render() string {
	style := s.style()
	inner := s.Width - design.SpaceXS*2
	if inner < 0 {
		inner = 0
	}

	var content string
	switch {
	case s.ShowMessage:
		content = utils.TruncateString(utils.FirstLine(s.Message), inner)
	case s.LeftText != "" && s.RightText != "":
		gap := inner - lipgloss.Width(s.LeftText) - lipgloss.Width(s.RightText)
		if gap > 0 {
			content = s.LeftText + strings.Repeat(" ", gap) + s.RightText
		} else {
			content = utils.TruncateString(s.LeftText, inner)
		}
	default:
		content = utils.TruncateString(s.LeftText+s.RightText, inner)
	}

	return style.
		Width(s.Width).
		MaxWidth(s.Width).
		Render(content)
}

func (s *StatusBar) style() lipgloss.Style {
	if !s.ShowMessage {
		return design.StatusBarStyle
	}
	switch s.MessageType {
	case model.StatusBarSuccess:
		return design.StatusBarSuccessStyle
	case model.StatusBarError:
		return design.StatusBarErrorStyle
	case model.StatusBarWarning:
		return design.StatusBarWarningStyle
	default:
		return design.StatusBarInfoStyle
	}
}
