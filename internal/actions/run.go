// Package actions fetches GitHub Actions workflow runs, either through the
// gh CLI or, when a token is available, the REST API.
package actions

import (
	"context"
	"time"
	"watchdash/internal/status"
)

// Run is one workflow run in the shape gh prints with --json.
type Run struct {
	DatabaseID   int64     `json:"databaseId"`
	HeadSha      string    `json:"headSha"`
	WorkflowName string    `json:"workflowName"`
	HeadBranch   string    `json:"headBranch"`
	Status       string    `json:"status"`
	Conclusion   string    `json:"conclusion"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	URL          string    `json:"url"`
}

// Fetcher lists the most recent runs of repo ("owner/name").
type Fetcher interface {
	FetchRuns(ctx context.Context, repo string, limit int) ([]Run, error)
}

const shortShaLen = 7

// ToRecord maps a run onto the canonical model using the github-actions
// table.
func (r Run) ToRecord(mapper *status.Mapper) (status.Record, error) {
	pair := mapper.MapWith(status.ProviderGitHubActions, r.Status, r.Conclusion)

	rec := status.Record{
		ID:        shortSha(r.HeadSha),
		Title:     r.WorkflowName,
		Ref:       r.HeadBranch,
		Build:     pair.Build,
		Deploy:    pair.Deploy,
		StartedAt: r.CreatedAt,
		URL:       r.URL,
		RawStatus: r.Status,
		RawDetail: r.Conclusion,
	}
	if r.Status == "completed" && !r.UpdatedAt.Before(r.CreatedAt) {
		rec.FinishedAt = r.UpdatedAt
	}
	return status.NewRecord(rec)
}

// DisplayStatus is the text shown in the Status column: the conclusion for
// completed runs, the run status otherwise.
func DisplayStatus(rec status.Record) string {
	if rec.RawStatus == "completed" && rec.RawDetail != "" {
		return rec.RawDetail
	}
	if rec.RawStatus == "" {
		return rec.Build.String()
	}
	return rec.RawStatus
}

func shortSha(sha string) string {
	if len(sha) > shortShaLen {
		return sha[:shortShaLen]
	}
	return sha
}
