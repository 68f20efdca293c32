package controller

import (
	"fmt"
	"watchdash/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func handleProviderMenuMsg(m *model.Model, msg model.ProviderMenuMsg) (*model.Model, tea.Cmd) {
	if m.CurrentAppMode != model.ModeList {
		return m, nil
	}
	if msg.Err != nil {
		m.Log.Error(subsystem, msg.Err, "Failed to open provider menu")
		return m, m.SetStatusMessage("Provider menu: "+msg.Err.Error(), model.StatusBarError, statusLong)
	}
	m.ProviderState = msg.State
	m.ProviderChoices = msg.Choices
	m.ProviderCursor = choiceIndex(msg.Choices, msg.State.Provider)
	m.ProviderError = ""
	if msg.State.Provider == "" {
		m.CurrentAppMode = model.ModeProviderSelect
	} else {
		m.CurrentAppMode = model.ModeProviderManage
	}
	return m, nil
}

func choiceIndex(choices []model.ProviderChoice, name string) int {
	for i, c := range choices {
		if c.Descriptor.Name == name {
			return i
		}
	}
	return 0
}

func handleProviderFieldsMsg(m *model.Model, msg model.ProviderFieldsMsg) (*model.Model, tea.Cmd) {
	if m.CurrentAppMode != model.ModeProviderSelect && m.CurrentAppMode != model.ModeProviderManage {
		return m, nil
	}
	if msg.Err != nil {
		m.Log.Error(subsystem, msg.Err, "Failed to read config fields of %s", msg.Choice.Descriptor.Name)
		m.ProviderError = msg.Err.Error()
		return m, nil
	}
	m.Form = model.NewProviderForm(msg.Choice, msg.Fields, msg.Stored)
	m.ProviderError = ""
	m.CurrentAppMode = model.ModeProviderConfigure
	return m, nil
}

func handleProviderSavedMsg(m *model.Model, msg model.ProviderSavedMsg) (*model.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Log.Error(subsystem, msg.Err, "Failed to save provider %s", msg.Provider)
		if m.Form != nil {
			m.Form.Err = msg.Err.Error()
		}
		return m, nil
	}
	m.Log.Info(subsystem, "Saved configuration for provider %s", msg.Provider)
	m.Form = nil
	m.CurrentAppMode = model.ModeList
	m.RequestRefreshAfterChange()
	return m, m.SetStatusMessage(fmt.Sprintf("Saved %s configuration", msg.Provider), model.StatusBarSuccess, statusShort)
}

func handleProviderRemovedMsg(m *model.Model, msg model.ProviderRemovedMsg) (*model.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Log.Error(subsystem, msg.Err, "Failed to remove provider configuration")
		m.ProviderError = msg.Err.Error()
		return m, nil
	}
	m.Log.Info(subsystem, "Removed provider configuration")
	m.ProviderState.ClearProvider()
	m.CurrentAppMode = model.ModeList
	m.RequestRefreshAfterChange()
	return m, m.SetStatusMessage("Provider configuration removed", model.StatusBarSuccess, statusShort)
}

func closeProviderFlow(m *model.Model) {
	m.CurrentAppMode = model.ModeList
	m.Form = nil
	m.ProviderError = ""
}

func handleProviderSelectKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch s := msg.String(); {
	case key.Matches(msg, m.Keys.Esc), s == "q", s == "ctrl+c":
		closeProviderFlow(m)
	case key.Matches(msg, m.Keys.Up):
		if m.ProviderCursor > 0 {
			m.ProviderCursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.ProviderCursor < len(m.ProviderChoices)-1 {
			m.ProviderCursor++
		}
	case key.Matches(msg, m.Keys.Enter):
		return m, pickProvider(m, m.ProviderCursor)
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		return m, pickProvider(m, int(s[0]-'1'))
	}
	return m, nil
}

func pickProvider(m *model.Model, i int) tea.Cmd {
	if i < 0 || i >= len(m.ProviderChoices) || m.Runner == nil {
		return nil
	}
	m.ProviderCursor = i
	return model.LoadProviderFieldsCmd(m.Runner, m.ProviderChoices[i], m.ProviderState)
}

func handleProviderConfigureKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	f := m.Form
	if f == nil {
		closeProviderFlow(m)
		return m, nil
	}
	switch msg.String() {
	case "esc", "ctrl+c":
		closeProviderFlow(m)
	case "tab", "down":
		f.Next()
	case "shift+tab", "up":
		f.Prev()
	case "ctrl+s":
		return m, saveForm(m)
	case "enter":
		if f.OnLastField() {
			return m, saveForm(m)
		}
		f.Next()
	default:
		return m, f.Update(msg)
	}
	return m, nil
}

func saveForm(m *model.Model) tea.Cmd {
	if !m.Form.Validate() || m.Project == nil {
		return nil
	}
	return model.SaveProviderCmd(m.Project, m.Form.Provider.Descriptor.Name, m.Form.Values())
}

func handleProviderManageKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch s := msg.String(); {
	case key.Matches(msg, m.Keys.Esc), s == "q", s == "ctrl+c":
		closeProviderFlow(m)
	case s == "e":
		for i, c := range m.ProviderChoices {
			if c.Descriptor.Name == m.ProviderState.Provider {
				return m, pickProvider(m, i)
			}
		}
		m.ProviderError = fmt.Sprintf("provider %q is not installed in %s", m.ProviderState.Provider, m.ProvidersDir)
	case s == "c":
		m.ProviderError = ""
		m.CurrentAppMode = model.ModeProviderSelect
	case s == "r":
		if m.Project == nil {
			return m, nil
		}
		return m, model.RemoveProviderCmd(m.Project)
	}
	return m, nil
}
