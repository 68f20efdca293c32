package utils

import (
	"context"
	"time"
)

const gitTimeout = 5 * time.Second

// GitTopLevel returns the root of the work tree containing dir.
func GitTopLevel(ctx context.Context, dir string) (string, error) {
	return Output(ctx, dir, gitTimeout, "git", "rev-parse", "--show-toplevel")
}

// GitRemoteURL returns the fetch URL of the named remote.
func GitRemoteURL(ctx context.Context, dir, remote string) (string, error) {
	return Output(ctx, dir, gitTimeout, "git", "remote", "get-url", remote)
}
