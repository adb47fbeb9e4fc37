package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DateLayout is the Go layout matching gitDateFormat. Dates are read and
// written in local time so they round-trip through --before unchanged.
const DateLayout = "2006-01-02T15:04:05"

const gitDateFormat = "%Y-%m-%dT%H:%M:%S"

// RecentFiles lists files added, copied, modified, or renamed between the last
// commit older than the day window and HEAD. Paths are relative to the
// repository root, in git's diff order. A repository without commits yields
// an empty list.
func (c *Client) RecentFiles(ctx context.Context, days int) ([]string, error) {
	latestDate, err := c.commitDate(ctx, "HEAD")
	if err != nil {
		if !c.HasCommits(ctx) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading latest commit date: %w", err)
	}
	if latestDate == "" {
		return nil, nil
	}

	dateBefore, err := subtractDays(latestDate, days)
	if err != nil {
		return nil, err
	}

	hashBefore, err := c.commitBefore(ctx, dateBefore)
	if err != nil {
		return nil, err
	}

	hashLatest, err := c.commitHash(ctx, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	slog.Debug("resolved recent commit range",
		"latest_date", latestDate,
		"before_date", dateBefore,
		"from", hashBefore,
		"to", hashLatest)

	out, err := c.Run(ctx, "--no-pager", "diff", "--diff-filter=ACMR", "--name-only", "-z", hashBefore, hashLatest)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	return splitNUL(out), nil
}

// commitBefore returns the newest commit strictly older than date. When the
// whole history is younger than date the repository's root commit is used.
func (c *Client) commitBefore(ctx context.Context, date string) (string, error) {
	hash, err := c.Run(ctx, "log", "-1", "--date-order", "--before="+date, "--pretty=format:%H")
	if err != nil {
		return "", fmt.Errorf("resolving commit before %s: %w", date, err)
	}
	if hash = strings.TrimSpace(hash); hash != "" {
		return hash, nil
	}

	roots, err := c.Run(ctx, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving root commit: %w", err)
	}
	// Histories joined by unrelated merges have several roots; rev-list lists
	// the oldest last.
	lines := strings.Fields(roots)
	if len(lines) == 0 {
		return "", fmt.Errorf("resolving root commit: no root commit found")
	}
	return lines[len(lines)-1], nil
}

func subtractDays(date string, days int) (string, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return "", fmt.Errorf("parsing commit date %q: %w", date, err)
	}
	return t.AddDate(0, 0, -days).Format(DateLayout), nil
}

// splitNUL splits -z output, dropping the trailing empty token.
func splitNUL(out string) []string {
	out = strings.TrimSuffix(out, "\x00")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\x00")
}
