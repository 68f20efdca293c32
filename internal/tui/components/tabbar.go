package components

import (
	"strings"
	"watchdash/internal/tui/design"
)

// TabBar renders tab titles with the active one highlighted.
type TabBar struct {
	Titles []string
	Active int
}

// Render returns the tab titles on one line.
func (t TabBar) Render() string {
	parts := make([]string, 0, len(t.Titles))
	for i, title := range t.Titles {
		if i == t.Active {
			parts = append(parts, design.TabActiveStyle.Render(title))
		} else {
			parts = append(parts, design.TabStyle.Render(title))
		}
	}
	return strings.Join(parts, " ")
}
