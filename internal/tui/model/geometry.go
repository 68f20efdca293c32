package model

import "watchdash/internal/layout"

// Screen geometry shared by the renderer and the mouse hit-testing.
const (
	// HeaderRows are the title/tab line and the source line.
	HeaderRows = 2
	// FooterRows is the status bar.
	FooterRows = 1
	// TableChromeRows are the top border, title row, title separator and
	// bottom border of a table.
	TableChromeRows = 4
	// TableFirstRow is the screen row of the first data row.
	TableFirstRow = HeaderRows + 3
	// CardsFirstRow is the screen row of the first card.
	CardsFirstRow = HeaderRows
)

// TableVisibleRows is the number of data rows that fit in height.
func TableVisibleRows(height int) int {
	rows := height - HeaderRows - FooterRows - TableChromeRows
	if rows < 1 {
		return 1
	}
	return rows
}

// CardGeometry sizes the agent cards for the terminal.
func CardGeometry(width, height int) layout.Cards {
	return layout.CardGeometry(width, height, HeaderRows+FooterRows)
}
