package view

import (
	"fmt"
	"sort"
	"strings"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/model"
)

func hint(text string) string { return design.DimStyle.Render(text) }

func errorLine(text string) string {
	if text == "" {
		return ""
	}
	return "\n" + design.TextErrorStyle.Render(text) + "\n"
}

// renderProviderSelect lists the installed plugins, numbered from 1.
func renderProviderSelect(m *model.Model) string {
	var b strings.Builder
	b.WriteString(design.BoldStyle.Render("Choose a deploy provider"))
	b.WriteString("\n\n")
	if len(m.ProviderChoices) == 0 {
		fmt.Fprintf(&b, "No providers installed in %s\n", m.ProvidersDir)
	}
	for i, c := range m.ProviderChoices {
		marker := "  "
		style := design.TextStyle
		if i == m.ProviderCursor {
			marker = "> "
			style = design.BoldStyle.Foreground(design.ColorPrimary)
		}
		line := fmt.Sprintf("%s%d. %s", marker, i+1, c.Label)
		if c.Label != c.Descriptor.Name {
			line += design.DimStyle.Render(" (" + c.Descriptor.Name + ")")
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}
	b.WriteString(errorLine(m.ProviderError))
	b.WriteString("\n")
	b.WriteString(hint("1-9 or enter pick · j/k move · esc cancel"))
	return design.OverlayStyle.Render(b.String())
}

// renderProviderConfigure shows one input per declared field.
func renderProviderConfigure(m *model.Model) string {
	f := m.Form
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(design.BoldStyle.Render("Configure " + f.Provider.Label))
	b.WriteString("\n\n")
	if len(f.Fields) == 0 {
		b.WriteString("This provider needs no configuration.\n")
	}
	for i, field := range f.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		style := design.InputLabelStyle
		if i == f.Focus {
			style = design.InputFocusedLabelStyle
		}
		b.WriteString(style.Render(label))
		b.WriteByte('\n')
		b.WriteString(f.Inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(errorLine(f.Err))
	b.WriteString(hint("tab/↑↓ move · enter on last field or ctrl+s save · esc cancel"))
	return design.OverlayStyle.Render(b.String())
}

// renderProviderManage summarises the configured provider.
func renderProviderManage(m *model.Model) string {
	state := m.ProviderState
	var b strings.Builder
	b.WriteString(design.BoldStyle.Render("Deploy provider: " + state.Provider))
	b.WriteString("\n\n")

	keys := make([]string, 0, len(state.Values))
	for k := range state.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		b.WriteString(design.DimStyle.Render("no values stored"))
		b.WriteByte('\n')
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "%s  %s\n", design.TextSecondaryStyle.Render(k), state.Values[k])
	}
	b.WriteString(errorLine(m.ProviderError))
	b.WriteString("\n")
	b.WriteString(hint("e edit · c change provider · r remove · esc back"))
	return design.OverlayStyle.Render(b.String())
}

// renderHelp is the full key map plus mouse gestures.
func renderHelp(m *model.Model) string {
	var b strings.Builder
	b.WriteString(design.BoldStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.Help.FullHelpView(m.Keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(design.BoldStyle.Render("Mouse"))
	b.WriteString("\n\n")
	b.WriteString("click selects a row · wheel scrolls · drag a column border to resize\n\n")
	b.WriteString(hint("press any key to close"))
	return design.OverlayStyle.Render(b.String())
}
