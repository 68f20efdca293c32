package view

import (
	"time"
	"watchdash/internal/status"
	"watchdash/internal/tui/design"
	"watchdash/internal/tui/utils"
)

func statusCell(s status.Status) Cell {
	return Cell{Text: design.StatusIcon(s) + " " + s.String(), Style: design.StatusStyle(s)}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DeployRows builds the cells of the deploys table. Column order follows
// model.DeployColumns.
func DeployRows(records []status.Record, now time.Time) [][]Cell {
	rows := make([][]Cell, 0, len(records))
	for _, r := range records {
		rows = append(rows, []Cell{
			{Text: r.ID, Style: design.CommitStyle(r.ID)},
			{Text: orDash(r.Ref), Style: design.TextSecondaryStyle},
			Plain(utils.FirstLine(r.Title)),
			{Text: orDash(r.Author), Style: design.TextSecondaryStyle},
			statusCell(r.Build),
			statusCell(r.Deploy),
			{Text: status.FormatElapsed(r, now), Style: design.DimStyle},
		})
	}
	return rows
}

// ActionRows builds the cells of the workflow runs table. Column order
// follows model.ActionColumns.
func ActionRows(records []status.Record, now time.Time) [][]Cell {
	rows := make([][]Cell, 0, len(records))
	for _, r := range records {
		overall := r.Overall()
		rows = append(rows, []Cell{
			Plain(r.Title),
			{Text: orDash(r.Ref), Style: design.TextSecondaryStyle},
			{Text: design.StatusIcon(overall) + " " + orDash(r.RawStatus), Style: design.StatusStyle(overall)},
			{Text: orDash(r.RawDetail), Style: design.StatusStyle(overall)},
			{Text: status.FormatAgo(r.StartedAt, now), Style: design.DimStyle},
			{Text: r.ID, Style: design.CommitStyle(r.ID)},
		})
	}
	return rows
}
