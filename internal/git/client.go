package git

import (
	"context"
	"log/slog"
	"strings"
)

// Client runs read-only git queries against the repository containing Dir.
type Client struct {
	Dir string
}

// NewClient creates a client rooted at dir.
func NewClient(dir string) *Client {
	return &Client{Dir: dir}
}

// Run executes a git command in the client's directory.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	return Run(ctx, args, RunOptions{Dir: c.Dir})
}

// LatestCommitDate returns the committer date of the newest commit reachable
// from rev, formatted with DateLayout in local time. It returns "" on failure,
// which includes a repository without commits.
func (c *Client) LatestCommitDate(ctx context.Context, rev string) string {
	date, err := c.commitDate(ctx, rev)
	if err != nil {
		slog.Debug("reading latest commit date failed", "rev", rev, "error", err)
		return ""
	}
	return date
}

// LatestCommitHash returns the hash of rev, or "" on failure.
func (c *Client) LatestCommitHash(ctx context.Context, rev string) string {
	hash, err := c.commitHash(ctx, rev)
	if err != nil {
		slog.Debug("reading latest commit hash failed", "rev", rev, "error", err)
		return ""
	}
	return hash
}

// RootDir returns the absolute top-level directory of the repository.
func (c *Client) RootDir(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return Normalize(strings.TrimSpace(out)), nil
}

// HasCommits reports whether HEAD points at a commit.
func (c *Client) HasCommits(ctx context.Context) bool {
	_, err := c.Run(ctx, "log", "-1")
	return err == nil
}

func (c *Client) commitDate(ctx context.Context, rev string) (string, error) {
	if rev == "" {
		rev = "HEAD"
	}
	return c.Run(ctx, "log", "-1", "--date=format-local:"+gitDateFormat, "--pretty=format:%cd", rev)
}

func (c *Client) commitHash(ctx context.Context, rev string) (string, error) {
	if rev == "" {
		rev = "HEAD"
	}
	return c.Run(ctx, "log", "-1", "--pretty=format:%H", rev)
}
