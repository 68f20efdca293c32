package actions

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"watchdash/internal/utils"
)

var githubRemote = regexp.MustCompile(`github\.com[:/]([^/]+/[^/.]+)(\.git)?$`)

// ParseRepo extracts "owner/name" from a GitHub remote URL in either the
// https or the scp-like ssh form.
func ParseRepo(remoteURL string) (string, bool) {
	m := githubRemote.FindStringSubmatch(strings.TrimSpace(remoteURL))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DetectRepo reads the origin remote of the git repository at dir.
func DetectRepo(ctx context.Context, dir string) (string, error) {
	url, err := utils.GitRemoteURL(ctx, dir, "origin")
	if err != nil {
		return "", fmt.Errorf("failed to read origin remote: %w", err)
	}
	repo, ok := ParseRepo(url)
	if !ok {
		return "", fmt.Errorf("origin %q is not a GitHub remote", url)
	}
	return repo, nil
}

func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return owner, name, nil
}
