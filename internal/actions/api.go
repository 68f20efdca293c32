package actions

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// APIFetcher talks to the GitHub REST API directly.
type APIFetcher struct {
	client *github.Client
	// Timeout bounds one FetchRuns call. Zero means no deadline beyond ctx.
	Timeout time.Duration
}

// NewAPIFetcher authenticates with a static token. Each fetch is bounded by
// timeout, the same limit the gh backend runs under.
func NewAPIFetcher(ctx context.Context, token string, timeout time.Duration) *APIFetcher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &APIFetcher{client: github.NewClient(oauth2.NewClient(ctx, ts)), Timeout: timeout}
}

// NewAPIFetcherWithClient uses httpClient as is. baseURL, when set, points
// the client at another API root (GitHub Enterprise, tests).
func NewAPIFetcherWithClient(httpClient *http.Client, baseURL string) (*APIFetcher, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
	}
	return &APIFetcher{client: client}, nil
}

// FetchRuns implements Fetcher.
func (a *APIFetcher) FetchRuns(ctx context.Context, repo string, limit int) ([]Run, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	opts := &github.ListWorkflowRunsOptions{ListOptions: github.ListOptions{PerPage: limit}}
	list, _, err := a.client.Actions.ListRepositoryWorkflowRuns(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow runs for %s: %w", repo, err)
	}

	runs := make([]Run, 0, len(list.WorkflowRuns))
	for _, wr := range list.WorkflowRuns {
		runs = append(runs, Run{
			DatabaseID:   wr.GetID(),
			HeadSha:      wr.GetHeadSHA(),
			WorkflowName: wr.GetName(),
			HeadBranch:   wr.GetHeadBranch(),
			Status:       wr.GetStatus(),
			Conclusion:   wr.GetConclusion(),
			CreatedAt:    wr.GetCreatedAt().Time,
			UpdatedAt:    wr.GetUpdatedAt().Time,
			URL:          wr.GetHTMLURL(),
		})
		if len(runs) == limit {
			break
		}
	}
	return runs, nil
}
