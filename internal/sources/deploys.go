// Package sources adapts the concrete data origins (plugin providers,
// GitHub Actions, agent status files) to scheduler.Source.
package sources

import (
	"context"
	"fmt"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/scheduler"
)

// Keys identifying each source in a snapshot. They match the tab names.
const (
	KeyDeploys = config.TabDeploys
	KeyActions = config.TabActions
	KeyAgents  = config.TabAgents
)

// ErrNoProvider is returned while the project has no provider selected.
var ErrNoProvider = fmt.Errorf("%w: no provider selected", provider.ErrConfigMissing)

// Deploys fetches records from the configured plugin provider. The state
// file and the plugin are re-read on every fetch.
type Deploys struct {
	Project      *config.ProjectStore
	ProvidersDir string
	Runner       *provider.Runner
}

// Key implements scheduler.Source.
func (d *Deploys) Key() string { return KeyDeploys }

// Fetch implements scheduler.Source.
func (d *Deploys) Fetch(ctx context.Context) (scheduler.Payload, error) {
	state, err := d.Project.Load()
	if err != nil {
		return scheduler.Payload{}, err
	}
	if state.Provider == "" {
		return scheduler.Payload{}, ErrNoProvider
	}

	desc, err := provider.Lookup(d.ProvidersDir, state.Provider)
	if err != nil {
		return scheduler.Payload{}, err
	}
	label, err := d.Runner.Name(ctx, desc)
	if err != nil {
		label = desc.Name
	}
	fields, err := d.Runner.Config(ctx, desc)
	if err != nil {
		return scheduler.Payload{}, err
	}
	values, err := provider.ResolveValues(fields, state.Values)
	if err != nil {
		return scheduler.Payload{}, err
	}

	records, err := d.Runner.List(ctx, desc, values)
	if err != nil {
		return scheduler.Payload{}, err
	}

	payload := scheduler.Payload{Label: label, Records: records}
	for _, r := range records {
		if r.URL != "" {
			payload.Detail = r.URL
			break
		}
	}
	return payload, nil
}
