package model

import (
	"watchdash/internal/config"
	"watchdash/internal/layout"
	"watchdash/internal/viewport"
)

// Tab is one top-level view. Each tab keeps its own selection and column
// overrides. Card tabs have a nil Table.
type Tab struct {
	Key   string
	Title string
	Table *layout.Table
	View  viewport.State
}

// Cards reports whether the tab renders cards instead of a table.
func (t *Tab) Cards() bool { return t.Table == nil }

// DeployColumns are the columns of the deploys table.
func DeployColumns() []layout.Column {
	return []layout.Column{
		{Title: "Commit", Width: 9, Min: 7},
		{Title: "Tag", Width: 10, Min: 4},
		{Title: "Message", Weight: 0.6, Min: 10},
		{Title: "Author", Weight: 0.4, Min: 6},
		{Title: "Build", Width: 12, Min: 6},
		{Title: "Deploy", Width: 12, Min: 6},
		{Title: "Elapsed", Width: 12, Min: 5},
	}
}

// ActionColumns are the columns of the workflow runs table.
func ActionColumns() []layout.Column {
	return []layout.Column{
		{Title: "Workflow", Weight: 0.55, Min: 8},
		{Title: "Branch", Weight: 0.45, Min: 6},
		{Title: "Status", Width: 15, Min: 6},
		{Title: "Conclusion", Width: 12, Min: 4},
		{Title: "Started", Width: 12, Min: 4},
		{Title: "Commit", Width: 9, Min: 7},
	}
}

// NewTab builds the tab for a source key. Unknown keys return nil.
func NewTab(key string) *Tab {
	switch key {
	case config.TabDeploys:
		return &Tab{Key: key, Title: "Deploys", Table: layout.NewTable(DeployColumns()...)}
	case config.TabActions:
		return &Tab{Key: key, Title: "Actions", Table: layout.NewTable(ActionColumns()...)}
	case config.TabAgents:
		return &Tab{Key: key, Title: "Agents"}
	default:
		return nil
	}
}
