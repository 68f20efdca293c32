package utils

import "github.com/mattn/go-runewidth"

// Ellipsis marks truncated text.
const Ellipsis = ".."

// TruncateString cuts s to at most width display cells, marking the cut
// with Ellipsis.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(Ellipsis) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// Fit truncates s and pads it with spaces to exactly width cells.
func Fit(s string, width int) string {
	return runewidth.FillRight(TruncateString(s, width), width)
}

// FirstLine returns s up to its first newline.
func FirstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
