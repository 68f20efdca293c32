package controller

import (
	"watchdash/internal/layout"
	"watchdash/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

func handleMouseMsg(m *model.Model, msg tea.MouseMsg) (*model.Model, tea.Cmd) {
	switch m.CurrentAppMode {
	case model.ModeList:
		return handleListMouse(m, msg), nil
	case model.ModeDetail:
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func handleListMouse(m *model.Model, msg tea.MouseMsg) *model.Model {
	tab := m.CurrentTab()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			tab.View.Move(-1)
		}
		return m
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			tab.View.Move(1)
		}
		return m
	}

	if tab.Table != nil && tab.Table.Dragging() {
		switch msg.Action {
		case tea.MouseActionMotion:
			tab.Table.DragTo(msg.X)
		case tea.MouseActionRelease:
			tab.Table.DragTo(msg.X)
			tab.Table.EndDrag()
		}
		return m
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}

	if tab.Cards() {
		if msg.Y < model.CardsFirstRow {
			return m
		}
		if i := tab.View.IndexAt((msg.Y - model.CardsFirstRow) / layout.CardHeight); i >= 0 {
			tab.View.Select(i)
		}
		return m
	}

	res := tab.Table.Solve(m.Width)
	tableBottom := model.TableFirstRow + tab.View.Visible
	if msg.Y >= model.HeaderRows && msg.Y <= tableBottom && tab.Table.BeginDrag(res, msg.X) {
		return m
	}
	if msg.Y >= model.TableFirstRow {
		if i := tab.View.IndexAt(msg.Y - model.TableFirstRow); i >= 0 {
			tab.View.Select(i)
		}
	}
	return m
}
