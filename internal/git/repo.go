package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Repo describes the repository an invocation runs in.
type Repo struct {
	// Dir is the top-level working tree directory, in forward-slash form.
	Dir string
	// ConfigDir is the git directory: Dir/.git, or the target of a .git file
	// for worktrees and submodules.
	ConfigDir string
}

// ResolveRepo finds the repository containing cwd. GIT_DIR and GIT_WORK_TREE
// are removed from the process environment first.
//
// The top level is derived by stripping git's --show-prefix from cwd rather
// than asking for --show-toplevel, so Dir keeps the same form as cwd even when
// cwd goes through a symlink.
func ResolveRepo(ctx context.Context, cwd string) (*Repo, error) {
	slog.Debug("resolving git repo", "cwd", cwd)
	UnsetAmbientEnv("GIT_DIR", "GIT_WORK_TREE")

	prefix, err := Run(ctx, []string{"rev-parse", "--show-prefix"}, RunOptions{Dir: cwd})
	if err != nil {
		return nil, err
	}

	dir := determineRepoDir(Normalize(cwd), Normalize(strings.TrimSpace(prefix)))
	configDir, err := resolveConfigDir(dir)
	if err != nil {
		return nil, err
	}

	slog.Debug("resolved git repo", "dir", dir, "config_dir", configDir)
	return &Repo{Dir: dir, ConfigDir: configDir}, nil
}

func determineRepoDir(cwd, prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	dir := cwd
	if prefix != "" {
		if i := strings.LastIndex(cwd, prefix); i >= 0 {
			dir = cwd[:i]
		}
	}
	if trimmed := strings.TrimSuffix(dir, "/"); trimmed != "" {
		dir = trimmed
	}
	return dir
}

func resolveConfigDir(dir string) (string, error) {
	dotGit := filepath.Join(dir, ".git")
	info, err := os.Lstat(dotGit)
	if err != nil {
		return "", fmt.Errorf("stat .git: %w", err)
	}
	if info.IsDir() {
		return Normalize(dotGit), nil
	}

	content, err := os.ReadFile(dotGit)
	if err != nil {
		return "", fmt.Errorf("read .git file: %w", err)
	}
	target := strings.TrimSpace(strings.TrimPrefix(string(content), "gitdir: "))
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return Normalize(filepath.Clean(target)), nil
}
