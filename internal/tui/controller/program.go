package controller

import (
	"watchdash/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for m in the alternate screen
// with mouse cell motion reporting, so separator drags produce motion
// events while a button is held.
func NewProgram(m *model.Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return tea.NewProgram(NewAppModel(m), opts...)
}
