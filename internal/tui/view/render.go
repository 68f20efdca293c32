// Package view paints frames from the model. Nothing here performs I/O or
// mutates the model.
package view

import (
	"errors"
	"path/filepath"
	"strings"
	"watchdash/internal/config"
	"watchdash/internal/scheduler"
	"watchdash/internal/sources"
	"watchdash/internal/status"
	"watchdash/internal/tui/components"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/model"
	"watchdash/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "watchdash"

// Render returns the full frame for the current mode.
func Render(m *model.Model) string {
	if m.CurrentAppMode == model.ModeQuitting {
		return m.QuittingMessage
	}
	if m.Width == 0 || m.Height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.CurrentAppMode {
	case model.ModeDetail:
		body = m.Detail.View()
	case model.ModeHelp:
		body = renderHelp(m)
	case model.ModeProviderSelect:
		body = renderProviderSelect(m)
	case model.ModeProviderConfigure:
		body = renderProviderConfigure(m)
	case model.ModeProviderManage:
		body = renderProviderManage(m)
	default:
		body = renderTabBody(m, m.CurrentTab())
	}

	bodyHeight := m.Height - model.HeaderRows - model.FooterRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTitleLine(m),
		renderSourceLine(m, m.CurrentTab()),
		body,
		renderStatusBar(m),
	)
}

func renderTitleLine(m *model.Model) string {
	titles := make([]string, len(m.Tabs))
	for i, tab := range m.Tabs {
		titles[i] = tab.Title
	}
	left := design.TitleStyle.Render(appTitle) + components.TabBar{Titles: titles, Active: m.ActiveTab}.Render()

	var right string
	switch {
	case m.Fetching:
		right = m.Spinner.View() + " refreshing"
	case !m.LastUpdated().IsZero():
		right = design.DimStyle.Render("updated " + status.FormatDuration(m.Now.Sub(m.LastUpdated())) + " ago")
	}
	return spread(left, right, m.Width)
}

func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return lipgloss.NewStyle().MaxWidth(width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderSourceLine(m *model.Model, tab *model.Tab) string {
	src := m.Source(tab.Key)
	var parts []string
	if src.Label != "" {
		parts = append(parts, design.BoldStyle.Render(utils.TruncateString(src.Label, m.Width/2)))
	}
	if src.Detail != "" {
		parts = append(parts, design.DimStyle.Render(src.Detail))
	}
	if src.Err != nil && !src.IsConfigError() {
		msg := "⚠ " + utils.FirstLine(src.Err.Error())
		if src.Loaded {
			msg += " (showing last data)"
		}
		parts = append(parts, design.TextErrorStyle.Render(msg))
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(strings.Join(parts, "  "))
}

func renderTabBody(m *model.Model, tab *model.Tab) string {
	src := m.Source(tab.Key)
	if tab.Key == config.TabDeploys && src.IsConfigError() {
		return renderNotConfigured(src)
	}
	if !src.Loaded {
		if src.Err != nil {
			return design.TextErrorStyle.Render("Fetch failed: "+src.Err.Error()) + "\n" +
				hint("retrying on the next refresh, press r to retry now")
		}
		return hint("Loading...")
	}

	if tab.Cards() {
		list := m.Agents()
		if len(list) == 0 {
			return hint("No agents reporting in " + m.StatusDir)
		}
		return RenderCards(list, model.CardGeometry(m.Width, m.Height), tab.View, m.Now, m.StaleAfter)
	}

	records := m.Records(tab)
	var rows [][]Cell
	empty := "No deploys yet."
	if tab.Key == config.TabActions {
		rows = ActionRows(records, m.Now)
		empty = "No workflow runs."
	} else {
		rows = DeployRows(records, m.Now)
	}
	table := RenderTable(tab.Table.Columns, tab.Table.Solve(m.Width), rows, tab.View)
	if len(rows) == 0 {
		table += "\n" + hint(empty)
	}
	return table
}

func renderNotConfigured(src scheduler.SourceState) string {
	var b strings.Builder
	b.WriteString(design.BoldStyle.Render("No deploy provider configured."))
	b.WriteString("\n\n")
	if !errors.Is(src.Err, sources.ErrNoProvider) {
		b.WriteString(design.TextWarningStyle.Render(src.Err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString("Press p to choose a provider.")
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func renderStatusBar(m *model.Model) string {
	bar := components.NewStatusBar(m.Width).
		WithLeftText(m.Help.ShortHelpView(m.Keys.ShortHelp())).
		WithRightText(filepath.Base(m.ProjectDir))
	if m.StatusBarMessage != "" {
		bar.WithMessage(m.StatusBarMessage, m.StatusBarMessageType)
	}
	return bar.Render()
}
