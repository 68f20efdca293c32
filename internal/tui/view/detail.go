package view

import (
	"fmt"
	"strings"
	"time"
	"watchdash/internal/actions"
	"watchdash/internal/agents"
	"watchdash/internal/config"
	"watchdash/internal/status"
	"watchdash/internal/tui/design"
)

const timeLayout = "2006-01-02 15:04:05"

type field struct {
	label string
	value string
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func renderFields(title string, fields []field) string {
	width := 0
	for _, f := range fields {
		if len(f.label) > width {
			width = len(f.label)
		}
	}
	var b strings.Builder
	b.WriteString(design.BoldStyle.Render(title))
	b.WriteString("\n\n")
	for _, f := range fields {
		label := design.TextSecondaryStyle.Render(fmt.Sprintf("%-*s", width, f.label))
		fmt.Fprintf(&b, "%s  %s\n", label, orDash(f.value))
	}
	return b.String()
}

// RecordDetail renders every field of a record. tab selects the wording.
func RecordDetail(r status.Record, tab string, now time.Time) string {
	if tab == config.TabActions {
		return renderFields(r.Title, []field{
			{"Run", actions.DisplayStatus(r)},
			{"Status", r.RawStatus},
			{"Conclusion", r.RawDetail},
			{"Canonical", r.Overall().String()},
			{"Branch", r.Ref},
			{"Commit", r.ID},
			{"Started", formatTime(r.StartedAt)},
			{"Finished", formatTime(r.FinishedAt)},
			{"Elapsed", status.FormatElapsed(r, now)},
			{"URL", r.URL},
		})
	}
	return renderFields(r.Title, []field{
		{"Commit", r.ID},
		{"Tag", r.Ref},
		{"Author", r.Author},
		{"Build", r.Build.String()},
		{"Deploy", r.Deploy.String()},
		{"Raw status", strings.TrimSpace(r.RawStatus + " " + r.RawDetail)},
		{"Environment", r.Environment},
		{"Started", formatTime(r.StartedAt)},
		{"Finished", formatTime(r.FinishedAt)},
		{"Elapsed", status.FormatElapsed(r, now)},
		{"URL", r.URL},
	})
}

// AgentDetail renders every field of an agent.
func AgentDetail(a agents.Agent, now time.Time, staleAfter time.Duration) string {
	state := "active"
	if a.Stale(now, staleAfter) {
		state = "stale"
	}
	return renderFields(a.Name, []field{
		{"Ticket", a.Ticket},
		{"State", state},
		{"Updated", formatTime(a.UpdatedAt)},
		{"Since update", status.FormatDuration(a.SinceUpdate(now))},
		{"Summary", a.Summary},
		{"Last action", a.LastAction},
		{"Action at", formatTime(a.LastActionAt)},
		{"File", a.File},
	})
}
