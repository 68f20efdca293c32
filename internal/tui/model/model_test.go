package model

import (
	"testing"
	"time"
	"watchdash/internal/agents"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
	"watchdash/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(tabs ...string) *Model {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return InitializeModel(TUIConfig{Tabs: tabs, Now: func() time.Time { return now }})
}

func snapshot(sources map[string]scheduler.SourceState) scheduler.Update {
	return scheduler.Update{State: scheduler.StateIdle, Snapshot: &scheduler.Snapshot{Generation: 1, Sources: sources}}
}

func TestInitializeModel_Tabs(t *testing.T) {
	tests := []struct {
		name string
		tabs []string
		want []string
	}{
		{"all", []string{config.TabDeploys, config.TabActions, config.TabAgents}, []string{"Deploys", "Actions", "Agents"}},
		{"unknown ignored", []string{"bogus", config.TabAgents}, []string{"Agents"}},
		{"empty falls back", nil, []string{"Deploys"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(tt.tabs...)
			var got []string
			for _, tab := range m.Tabs {
				got = append(got, tab.Title)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, ModeList, m.CurrentAppMode)
		})
	}
}

func TestApplyUpdate_RevalidatesSelection(t *testing.T) {
	m := testModel(config.TabDeploys, config.TabAgents)
	m.Resize(100, 30)

	recs := []status.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.ApplyUpdate(snapshot(map[string]scheduler.SourceState{
		config.TabDeploys: {Payload: scheduler.Payload{Records: recs}, Loaded: true},
		config.TabAgents:  {Payload: scheduler.Payload{Agents: []agents.Agent{{Name: "x"}}}, Loaded: true},
	}))
	m.Tabs[0].View.Select(2)

	rec, ok := m.SelectedRecord()
	require.True(t, ok)
	assert.Equal(t, "c", rec.ID)

	m.ApplyUpdate(snapshot(map[string]scheduler.SourceState{
		config.TabDeploys: {Payload: scheduler.Payload{Records: recs[:1]}, Loaded: true},
	}))
	assert.Equal(t, 0, m.Tabs[0].View.Selected)
	assert.Equal(t, 0, m.Tabs[1].View.Count)

	m.ApplyUpdate(scheduler.Update{State: scheduler.StateFetching})
	assert.True(t, m.Fetching)
	assert.Len(t, m.Records(m.Tabs[0]), 1, "fetching keeps the last snapshot")
}

func TestResize_SetsVisibleRows(t *testing.T) {
	m := testModel(config.TabDeploys, config.TabAgents)
	m.Resize(120, 40)
	assert.Equal(t, 40-HeaderRows-FooterRows-TableChromeRows, m.Tabs[0].View.Visible)
	assert.Equal(t, (40-HeaderRows-FooterRows)/6, m.Tabs[1].View.Visible)
}

func TestSelectedAgent(t *testing.T) {
	m := testModel(config.TabAgents)
	_, ok := m.SelectedAgent()
	assert.False(t, ok)

	m.ApplyUpdate(snapshot(map[string]scheduler.SourceState{
		config.TabAgents: {Payload: scheduler.Payload{Agents: []agents.Agent{{Name: "alpha"}, {Name: "beta"}}}},
	}))
	m.Tabs[0].View.Move(1)
	a, ok := m.SelectedAgent()
	require.True(t, ok)
	assert.Equal(t, "beta", a.Name)
	assert.Empty(t, m.SelectedURL())
}

func TestProviderForm(t *testing.T) {
	fields := []provider.Field{
		{Key: "service", Label: "Service", Required: true},
		{Key: "region", Label: "Region", Default: "oregon"},
	}
	f := NewProviderForm(ProviderChoice{Label: "Render"}, fields, map[string]string{"service": ""})

	assert.False(t, f.OnLastField())
	assert.False(t, f.Validate())
	assert.Equal(t, "Service is required", f.Err)
	assert.Equal(t, 0, f.Focus)

	f.Inputs[0].SetValue("api")
	assert.True(t, f.Validate())
	assert.Empty(t, f.Err)
	assert.Equal(t, map[string]string{"service": "api", "region": "oregon"}, f.Values())

	f.Next()
	assert.True(t, f.OnLastField())
	f.Next()
	assert.Equal(t, 0, f.Focus, "wraps")
	f.Prev()
	assert.Equal(t, 1, f.Focus)
}

func TestProviderForm_NoFields(t *testing.T) {
	f := NewProviderForm(ProviderChoice{Label: "Static"}, nil, nil)
	assert.True(t, f.OnLastField())
	assert.True(t, f.Validate())
	assert.Empty(t, f.Values())
	assert.Nil(t, f.Update(nil))
}

func TestSetStatusMessage(t *testing.T) {
	m := testModel()
	cmd := m.SetStatusMessage("saved", StatusBarSuccess, time.Millisecond)
	require.NotNil(t, cmd)
	assert.Equal(t, "saved", m.StatusBarMessage)
	first := m.StatusBarClearCancel

	m.SetStatusMessage("again", StatusBarInfo, time.Millisecond)
	_, open := <-first
	assert.False(t, open, "previous clear is cancelled")
}

func TestAppModeListLevel(t *testing.T) {
	assert.True(t, ModeList.ListLevel())
	assert.True(t, ModeDetail.ListLevel())
	assert.False(t, ModeProviderConfigure.ListLevel())
	assert.Equal(t, "ProviderManage", ModeProviderManage.String())
}
