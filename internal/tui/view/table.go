package view

import (
	"strings"
	"watchdash/internal/layout"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/utils"
	"watchdash/internal/viewport"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one table cell: plain text plus the style it is painted with.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// Plain returns an unstyled cell.
func Plain(text string) Cell {
	return Cell{Text: text, Style: design.TextStyle}
}

// RenderTable draws cols with widths from res. Only the rows inside the
// viewport window are drawn and the selected one is highlighted.
func RenderTable(cols []layout.Column, res layout.Result, rows [][]Cell, vp viewport.State) string {
	var b strings.Builder

	b.WriteString(borderLine(res.Widths, "┌", "┬", "┐"))
	b.WriteByte('\n')

	titles := make([]Cell, len(cols))
	for i, c := range cols {
		titles[i] = Cell{Text: c.Title, Style: design.TableHeaderStyle}
	}
	b.WriteString(rowLine(res.Widths, titles, false))
	b.WriteByte('\n')
	b.WriteString(borderLine(res.Widths, "├", "┼", "┤"))

	start, end := vp.Window()
	for i := start; i < end && i < len(rows); i++ {
		b.WriteByte('\n')
		b.WriteString(rowLine(res.Widths, rows[i], i == vp.Selected))
	}

	b.WriteByte('\n')
	b.WriteString(borderLine(res.Widths, "└", "┴", "┘"))
	return b.String()
}

func borderLine(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w))
	}
	b.WriteString(right)
	return design.TableBorderStyle.Render(b.String())
}

func rowLine(widths []int, cells []Cell, selected bool) string {
	bar := design.TableBorderStyle.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range widths {
		cell := Plain("")
		if i < len(cells) {
			cell = cells[i]
		}
		text := utils.Fit(" "+cell.Text, w)
		style := cell.Style
		if selected {
			style = style.Inherit(design.SelectedRowStyle)
		}
		b.WriteString(style.Render(text))
		b.WriteString(bar)
	}
	return b.String()
}
