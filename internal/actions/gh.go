package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"watchdash/internal/utils"
)

const ghRunFields = "headSha,workflowName,headBranch,status,conclusion,createdAt,updatedAt,url,databaseId"

// CLIFetcher shells out to gh, reusing whatever authentication gh has.
type CLIFetcher struct {
	Binary  string
	Dir     string
	Timeout time.Duration
}

// FetchRuns implements Fetcher.
func (c CLIFetcher) FetchRuns(ctx context.Context, repo string, limit int) ([]Run, error) {
	if _, _, err := splitRepo(repo); err != nil {
		return nil, err
	}
	bin := c.Binary
	if bin == "" {
		bin = "gh"
	}
	argv := []string{bin, "run", "list", "--repo", repo, "--limit", strconv.Itoa(limit), "--json", ghRunFields}

	res, err := utils.Run(ctx, utils.ExecOptions{Dir: c.Dir, Timeout: c.Timeout}, argv)
	if err != nil {
		return nil, err
	}

	var runs []Run
	if err := json.Unmarshal(res.Stdout, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode gh output: %w", err)
	}
	return runs, nil
}
