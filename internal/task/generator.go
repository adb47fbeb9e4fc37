package task

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/spachava753/lint-recently/internal/models"
)

// GenerateTasks matches every configured pattern against files and returns
// one task per pattern, in configuration order.
//
// files may be absolute or relative to gitDir. Matching happens on paths
// relative to cwd; files outside cwd are only considered by patterns that
// start with "../". A pattern without a slash is matched against base names,
// so "*.js" matches both "test.js" and "sub/test.js".
func GenerateTasks(patterns []models.PatternCommands, files []string, cwd, gitDir string, relative bool) ([]models.Task, error) {
	slog.Debug("generating tasks", "patterns", len(patterns), "files", len(files))

	relativeFiles := make([]string, 0, len(files))
	for _, f := range files {
		abs := f
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(gitDir, f)
		}
		relativeFiles = append(relativeFiles, relativeTo(cwd, abs))
	}

	tasks := make([]models.Task, 0, len(patterns))
	for _, pc := range patterns {
		matches, err := matchFiles(pc.Pattern, relativeFiles)
		if err != nil {
			return nil, err
		}

		fileList := make([]string, 0, len(matches))
		for _, m := range matches {
			if relative {
				fileList = append(fileList, m)
			} else {
				fileList = append(fileList, filepath.ToSlash(filepath.Join(cwd, m)))
			}
		}

		task := models.Task{
			Pattern:  pc.Pattern,
			Commands: pc.Commands,
			FileList: fileList,
		}
		slog.Debug("generated task", "pattern", task.Pattern, "commands", task.Commands, "files", len(task.FileList))
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func matchFiles(pattern string, files []string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	parentDirPattern := strings.HasPrefix(pattern, "../")
	matchBase := !strings.Contains(pattern, "/")

	var matches []string
	for _, f := range files {
		if !parentDirPattern && (strings.HasPrefix(f, "..") || isAbs(f)) {
			continue
		}

		name := f
		if matchBase {
			name = path.Base(f)
		}
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("matching pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, f)
		}
	}
	return matches, nil
}

// relativeTo returns target relative to base in forward-slash form, or target
// itself when no relative path exists (different volumes).
func relativeTo(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

func isAbs(p string) bool {
	return path.IsAbs(p) || filepath.IsAbs(filepath.FromSlash(p))
}
