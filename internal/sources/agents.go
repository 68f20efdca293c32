package sources

import (
	"context"
	"fmt"
	"watchdash/internal/agents"
	"watchdash/internal/scheduler"
)

// Agents reads the agent status directories of the project.
type Agents struct {
	ProjectDir string
	StatusDir  string
}

// Key implements scheduler.Source.
func (a *Agents) Key() string { return KeyAgents }

// Fetch implements scheduler.Source.
func (a *Agents) Fetch(ctx context.Context) (scheduler.Payload, error) {
	if err := ctx.Err(); err != nil {
		return scheduler.Payload{}, err
	}
	list, err := agents.Collect(a.ProjectDir, a.StatusDir)
	if err != nil {
		return scheduler.Payload{}, err
	}
	label := fmt.Sprintf("%d agents", len(list))
	if len(list) == 1 {
		label = "1 agent"
	}
	return scheduler.Payload{Label: label, Agents: list}, nil
}
