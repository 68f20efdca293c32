package view

import (
	"strings"
	"time"
	"watchdash/internal/agents"
	"watchdash/internal/layout"
	"watchdash/internal/status"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/utils"
	"watchdash/internal/viewport"

	"github.com/charmbracelet/lipgloss"
)

// cardInner is the text width inside a card of total width w: two border
// cells and two padding cells.
func cardInner(w int) int { return w - 4 }

// RenderCards draws the agent cards inside the viewport window. Each card
// takes layout.CardHeight rows including the gap below it.
func RenderCards(list []agents.Agent, geo layout.Cards, vp viewport.State, now time.Time, staleAfter time.Duration) string {
	tickets := make([]string, len(list))
	for i, a := range list {
		tickets[i] = a.Ticket
	}
	tickets, _ = agents.StripTicketPrefix(tickets)

	start, end := vp.Window()
	blocks := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		blocks = append(blocks, renderCard(list[i], tickets[i], geo, i == vp.Selected, now, staleAfter))
	}
	return strings.Join(blocks, "\n\n")
}

func renderCard(a agents.Agent, ticket string, geo layout.Cards, selected bool, now time.Time, staleAfter time.Duration) string {
	inner := cardInner(geo.Width)
	stale := a.Stale(now, staleAfter)

	updated := "updated " + status.FormatAgo(a.UpdatedAt, now)
	statusStyle := design.DimStyle
	if stale {
		updated = "stale, " + updated
		statusStyle = design.TextWarningStyle
	}
	header := design.BoldStyle.Render(utils.TruncateString(a.Name, inner))
	if nameWidth := inner - lipgloss.Width(updated) - 1; nameWidth > 0 {
		header = design.BoldStyle.Render(utils.Fit(a.Name, nameWidth)) + " " + statusStyle.Render(updated)
	}

	action := orDash(a.LastAction)
	if !a.LastActionAt.IsZero() {
		action += " (" + status.FormatAgo(a.LastActionAt, now) + ")"
	}
	second := utils.TruncateString(orDash(ticket)+"  "+action, inner)
	third := utils.TruncateString(orDash(a.Summary), inner)

	style := design.CardStyle
	switch {
	case selected:
		style = design.CardSelectedStyle
	case stale:
		style = design.CardStaleStyle
	}
	body := header + "\n" + design.TextSecondaryStyle.Render(second) + "\n" + third
	return style.
		Width(geo.Width - 2).
		MarginLeft(geo.Margin).
		Render(body)
}
