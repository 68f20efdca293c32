package view

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"
	"watchdash/internal/agents"
	"watchdash/internal/config"
	"watchdash/internal/layout"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
	"watchdash/internal/sources"
	"watchdash/internal/status"
	"watchdash/internal/tui/model"
	"watchdash/internal/viewport"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiPattern.ReplaceAllString(s, "") }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testRecords(n int) []status.Record {
	recs := make([]status.Record, n)
	for i := range recs {
		recs[i] = status.Record{
			ID:        fmt.Sprintf("abc%04d", i),
			Title:     fmt.Sprintf("feat: change number %d", i),
			Author:    "dana",
			Ref:       "main",
			Build:     status.Live,
			Deploy:    status.Deploying,
			StartedAt: testNow.Add(-90 * time.Second),
			URL:       "https://example.com/" + fmt.Sprint(i),
			RawStatus: "in_progress",
		}
	}
	return recs
}

func newTestModel(width, height int, tabs []string, sources map[string]scheduler.SourceState) *model.Model {
	m := model.InitializeModel(model.TUIConfig{
		ProjectDir: "/work/shop",
		StatusDir:  ".agent-status.d",
		Tabs:       tabs,
		StaleAfter: 3 * time.Minute,
		Now:        func() time.Time { return testNow },
	})
	m.Resize(width, height)
	m.ApplyUpdate(scheduler.Update{Snapshot: &scheduler.Snapshot{Generation: 1, Sources: sources}})
	return m
}

func TestRenderTable_LinesMatchLayout(t *testing.T) {
	cols := model.ActionColumns()
	res := layout.Solve(cols, 80, nil)
	rows := ActionRows(testRecords(3), testNow)

	out := RenderTable(cols, res, rows, viewport.New(len(rows), 10))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, model.TableChromeRows+3)

	for i, line := range lines {
		assert.Equal(t, res.Total, lipgloss.Width(line), "line %d", i)
		plain := []rune(stripANSI(line))
		for _, x := range res.Separators {
			switch i {
			case 0:
				assert.Equal(t, '┬', plain[x], "top line, x=%d", x)
			case 2:
				assert.Equal(t, '┼', plain[x], "title separator, x=%d", x)
			case len(lines) - 1:
				assert.Equal(t, '┴', plain[x], "bottom line, x=%d", x)
			default:
				assert.Equal(t, '│', plain[x], "row %d, x=%d", i, x)
			}
		}
	}
	assert.Contains(t, lines[1], "Workflow")
}

func TestRenderTable_OnlyDrawsWindow(t *testing.T) {
	cols := model.DeployColumns()
	res := layout.Solve(cols, 100, nil)
	rows := DeployRows(testRecords(10), testNow)
	vp := viewport.New(10, 3)
	vp.Select(5)

	out := RenderTable(cols, res, rows, vp)
	assert.Len(t, strings.Split(out, "\n"), model.TableChromeRows+3)
	assert.Contains(t, out, "change number 5")
	assert.Contains(t, out, "change number 3")
	assert.NotContains(t, out, "change number 2")
	assert.NotContains(t, out, "change number 6")
}

func TestDeployRows_Cells(t *testing.T) {
	rec := testRecords(1)[0]
	rec.Title = "fix: login\n\nlong body"
	rows := DeployRows([]status.Record{rec}, testNow)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(model.DeployColumns()))
	assert.Equal(t, "fix: login", rows[0][2].Text)
	assert.Equal(t, "✓ live", rows[0][4].Text)
	assert.Equal(t, "● deploying", rows[0][5].Text)
	assert.Equal(t, "1m 30s ago", rows[0][6].Text)
}

func TestRender_FrameFillsTerminal(t *testing.T) {
	m := newTestModel(100, 30, []string{config.TabDeploys, config.TabActions}, map[string]scheduler.SourceState{
		config.TabDeploys: {Payload: scheduler.Payload{Label: "Render", Records: testRecords(4)}, Loaded: true, UpdatedAt: testNow.Add(-5 * time.Second)},
	})

	out := Render(m)
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.Contains(t, out, "Deploys")
	assert.Contains(t, out, "Actions")
	assert.Contains(t, out, "Render")
	assert.Contains(t, out, "change number 0")
	assert.Contains(t, out, "updated 5s ago")
	assert.Contains(t, out, "shop")
}

func TestRender_ErrorKeepsLastData(t *testing.T) {
	m := newTestModel(100, 30, []string{config.TabDeploys}, map[string]scheduler.SourceState{
		config.TabDeploys: {
			Payload: scheduler.Payload{Records: testRecords(2)},
			Err:     provider.ErrPluginTimeout,
			Loaded:  true,
		},
	})
	out := Render(m)
	assert.Contains(t, out, "plugin timed out")
	assert.Contains(t, out, "showing last data")
	assert.Contains(t, out, "change number 1")
}

func TestRender_NotConfigured(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		contains    []string
		notContains []string
	}{
		{
			name:        "no provider selected",
			err:         sources.ErrNoProvider,
			contains:    []string{"No deploy provider configured.", "Press p"},
			notContains: []string{"no provider selected"},
		},
		{
			name:     "invalid state file",
			err:      fmt.Errorf("%w: bad json", provider.ErrConfigInvalid),
			contains: []string{"No deploy provider configured.", "bad json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(100, 30, []string{config.TabDeploys}, map[string]scheduler.SourceState{
				config.TabDeploys: {Err: tt.err},
			})
			out := Render(m)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, c := range tt.notContains {
				assert.NotContains(t, out, c)
			}
		})
	}
}

func TestRender_AgentCards(t *testing.T) {
	list := []agents.Agent{
		{Name: "alpha", Ticket: "SHOP-101", UpdatedAt: testNow.Add(-time.Minute), Summary: "wiring checkout"},
		{Name: "beta", Ticket: "SHOP-102", UpdatedAt: testNow.Add(-10 * time.Minute), Summary: "idle"},
	}
	m := newTestModel(100, 30, []string{config.TabAgents}, map[string]scheduler.SourceState{
		config.TabAgents: {Payload: scheduler.Payload{Agents: list}, Loaded: true},
	})
	out := Render(m)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "wiring checkout")
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "101", "shared ticket prefix is stripped")
	assert.NotContains(t, out, "SHOP-101")
	assert.Equal(t, 30, lipgloss.Height(out))
}

func TestRenderCards_Geometry(t *testing.T) {
	list := []agents.Agent{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	geo := layout.CardGeometry(80, 40, model.HeaderRows+model.FooterRows)
	out := RenderCards(list, geo, viewport.New(3, 2), testNow, time.Minute)
	// Two visible cards of five rows plus one gap row between them.
	assert.Equal(t, 2*(layout.CardHeight-1)+1, lipgloss.Height(out))
	assert.Equal(t, geo.Width+geo.Margin, lipgloss.Width(out))
}

func TestRecordDetail(t *testing.T) {
	rec := testRecords(1)[0]
	out := RecordDetail(rec, config.TabDeploys, testNow)
	for _, want := range []string{"Commit", "abc0000", "Deploy", "deploying", "https://example.com/0"} {
		assert.Contains(t, out, want)
	}

	rec.RawStatus, rec.RawDetail = "completed", "failure"
	out = RecordDetail(rec, config.TabActions, testNow)
	assert.Contains(t, out, "Conclusion")
	assert.Contains(t, out, "failure")
}

func TestRender_ProviderModes(t *testing.T) {
	m := newTestModel(100, 30, []string{config.TabDeploys}, nil)

	m.CurrentAppMode = model.ModeProviderSelect
	m.ProviderChoices = []model.ProviderChoice{
		{Descriptor: provider.Descriptor{Name: "render"}, Label: "Render"},
		{Descriptor: provider.Descriptor{Name: "fly"}, Label: "fly"},
	}
	out := Render(m)
	assert.Contains(t, out, "1. Render")
	assert.Contains(t, out, "(render)")
	assert.Contains(t, out, "2. fly")

	m.CurrentAppMode = model.ModeProviderConfigure
	m.Form = model.NewProviderForm(m.ProviderChoices[0], []provider.Field{{Key: "service", Label: "Service", Required: true}}, nil)
	m.Form.Validate()
	out = Render(m)
	assert.Contains(t, out, "Configure Render")
	assert.Contains(t, out, "Service *")
	assert.Contains(t, out, "Service is required")

	m.CurrentAppMode = model.ModeProviderManage
	m.ProviderState = config.ProjectState{Provider: "render", Values: map[string]string{"service": "api"}}
	out = Render(m)
	assert.Contains(t, out, "Deploy provider: render")
	assert.Contains(t, out, "api")

	m.CurrentAppMode = model.ModeHelp
	out = Render(m)
	assert.Contains(t, out, "refresh")
	assert.Contains(t, out, "drag a column border")
}

func TestRender_Quitting(t *testing.T) {
	m := newTestModel(100, 30, nil, nil)
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "bye"
	assert.Equal(t, "bye", Render(m))
}
