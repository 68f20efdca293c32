package sources

import (
	"context"
	"fmt"
	"os"
	"watchdash/internal/actions"
	"watchdash/internal/scheduler"
	"watchdash/internal/status"
	"watchdash/pkg/logging"
)

// Actions fetches recent workflow runs of the project's GitHub repository.
type Actions struct {
	ProjectDir string
	// Repo overrides detection from the origin remote.
	Repo    string
	Limit   int
	Fetcher actions.Fetcher
	Mapper  *status.Mapper
	Log     *logging.Logger
}

// NewActions picks the API backend when tokenEnv names a non-empty
// variable, and the gh CLI otherwise. Both run under cli.Timeout.
func NewActions(ctx context.Context, projectDir, repo string, limit int, tokenEnv string, cli actions.CLIFetcher, mapper *status.Mapper, log *logging.Logger) *Actions {
	var fetcher actions.Fetcher = cli
	if tokenEnv != "" {
		if token := os.Getenv(tokenEnv); token != "" {
			log.Info("Actions", "using GitHub API with token from $%s", tokenEnv)
			fetcher = actions.NewAPIFetcher(ctx, token, cli.Timeout)
		}
	}
	return &Actions{ProjectDir: projectDir, Repo: repo, Limit: limit, Fetcher: fetcher, Mapper: mapper, Log: log}
}

// Key implements scheduler.Source.
func (a *Actions) Key() string { return KeyActions }

// Fetch implements scheduler.Source.
func (a *Actions) Fetch(ctx context.Context) (scheduler.Payload, error) {
	repo := a.Repo
	if repo == "" {
		detected, err := actions.DetectRepo(ctx, a.ProjectDir)
		if err != nil {
			return scheduler.Payload{}, err
		}
		repo = detected
	}

	runs, err := a.Fetcher.FetchRuns(ctx, repo, a.Limit)
	if err != nil {
		return scheduler.Payload{}, err
	}

	records := make([]status.Record, 0, len(runs))
	for _, run := range runs {
		rec, err := run.ToRecord(a.Mapper)
		if err != nil {
			a.Log.Warn("Actions", "skipping run %d: %v", run.DatabaseID, err)
			continue
		}
		records = append(records, rec)
	}
	return scheduler.Payload{
		Label:   repo,
		Detail:  fmt.Sprintf("https://github.com/%s/actions", repo),
		Records: records,
	}, nil
}
