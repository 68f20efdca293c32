package components

import (
	"strings"
	"testing"
	"watchdash/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_Render(t *testing.T) {
	tests := []struct {
		name     string
		bar      *StatusBar
		contains []string
	}{
		{
			name:     "left and right",
			bar:      NewStatusBar(60).WithLeftText("? help").WithRightText("myproject"),
			contains: []string{"? help", "myproject"},
		},
		{
			name:     "message wins",
			bar:      NewStatusBar(60).WithLeftText("? help").WithMessage("saved\nsecond line", model.StatusBarSuccess),
			contains: []string{"saved"},
		},
		{
			name:     "narrow keeps left",
			bar:      NewStatusBar(12).WithLeftText("? help r refresh").WithRightText("myproject"),
			contains: []string{"? help"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.bar.Render()
			assert.Equal(t, tt.bar.Width, lipgloss.Width(out))
			assert.Equal(t, 1, lipgloss.Height(out))
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			assert.NotContains(t, out, "second line")
		})
	}
}

func TestTabBar_Render(t *testing.T) {
	out := TabBar{Titles: []string{"Deploys", "Actions", "Agents"}, Active: 1}.Render()
	for _, title := range []string{"Deploys", "Actions", "Agents"} {
		assert.Contains(t, out, title)
	}
	assert.Equal(t, 1, len(strings.Split(out, "\n")))
}
