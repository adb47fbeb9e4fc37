package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spachava753/lint-recently/internal/chunk"
	"github.com/spachava753/lint-recently/internal/git"
	"github.com/spachava753/lint-recently/internal/messages"
	"github.com/spachava753/lint-recently/internal/models"
	"github.com/spachava753/lint-recently/internal/task"
)

// RunError is returned when a run fails. Context holds the errors and output
// collected up to that point.
type RunError struct {
	Context *models.RunContext
}

func (e *RunError) Error() string {
	return fmt.Sprintf("lint-recently failed: %v", e.Context.Errors())
}

// RunAll resolves the recently changed files and runs the configured commands
// against them.
//
// Empty history, no recent files and no matching patterns all return
// successfully with an explanatory line in the context output. A missing
// repository, a failed git query, or any failed command returns a *RunError.
func RunAll(ctx context.Context, opts models.Options, cfg models.Config, logger models.Logger) (*models.RunContext, error) {
	slog.Debug("running all linter scripts")
	rc := models.NewRunContext(opts.Quiet)

	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return rc, fmt.Errorf("getting working directory: %w", err)
		}
		cwd = wd
	}

	repo, err := git.ResolveRepo(ctx, cwd)
	if err != nil {
		slog.Debug("resolving git repo failed", "error", err)
		rc.Inform(messages.NotGitRepo)
		rc.AddError(models.ErrGitRepo)
		return rc, &RunError{Context: rc}
	}

	client := git.NewClient(repo.Dir)
	if !client.HasCommits(ctx) {
		rc.Inform(messages.NoRecentFiles)
		return rc, nil
	}

	files, err := client.RecentFiles(ctx, cfg.Days)
	if err != nil {
		slog.Debug("getting recent files failed", "error", err)
		rc.Inform(messages.FailedGetRecentFiles)
		rc.AddError(models.ErrGetRecentFiles)
		return rc, &RunError{Context: rc}
	}
	slog.Debug("loaded recent files", "files", files)

	if len(files) == 0 {
		rc.Inform(messages.NoRecentFiles)
		return rc, nil
	}

	chunks := chunk.Files(files, repo.Dir, opts.Relative, opts.MaxArgLength)
	if len(chunks) > 1 {
		slog.Debug("chunked recent files", "chunks", len(chunks))
	}

	titleWidth := TitleWidth()
	plan := make([]*Step, 0, len(chunks))
	for i, files := range chunks {
		tasks, err := task.GenerateTasks(cfg.Patterns, files, cwd, repo.Dir, opts.Relative)
		if err != nil {
			return rc, fmt.Errorf("generating tasks: %w", err)
		}

		patternSteps := make([]*Step, 0, len(tasks))
		for _, t := range tasks {
			patternSteps = append(patternSteps, &Step{
				Title:    "Running tasks for " + t.Pattern,
				Children: commandSteps(t, opts, cwd, repo.Dir, titleWidth),
				Policy:   Policy{Concurrency: 1, ExitOnError: true},
				Skip: func() string {
					if len(t.FileList) == 0 {
						return "No recent files match " + t.Pattern
					}
					return ""
				},
			})
		}

		title := "Running tasks..."
		if len(chunks) > 1 {
			title = fmt.Sprintf("Running tasks (chunk %d/%d)...", i+1, len(chunks))
		}
		plan = append(plan, &Step{
			Title:    title,
			Children: patternSteps,
			Policy:   Policy{Concurrency: opts.Concurrent},
			Skip: func() string {
				for _, s := range patternSteps {
					if s.SkipReason() == "" {
						return ""
					}
				}
				return "No tasks to run."
			},
		})
	}

	if allSkipped(plan) {
		rc.Inform(messages.NoTasks)
		return rc, nil
	}

	runner := NewRunner(rc, logger, opts.Concurrent)
	if err := runner.Run(ctx, plan, Policy{Concurrency: opts.Concurrent}); err != nil {
		slog.Debug("plan finished with failures", "error", err)
	}

	if rc.HasErrors() {
		return rc, &RunError{Context: rc}
	}
	return rc, nil
}

// commandSteps resolves each command of t into a leaf step. Commands of one
// pattern run in order.
func commandSteps(t models.Task, opts models.Options, cwd, gitDir string, titleWidth int) []*Step {
	steps := make([]*Step, 0, len(t.Commands))
	for _, command := range t.Commands {
		steps = append(steps, &Step{
			Title: TruncateTitle(command, titleWidth),
			Run: ResolveTaskFunc(CommandOptions{
				Command:  command,
				Files:    t.FileList,
				GitDir:   gitDir,
				Cwd:      cwd,
				Relative: opts.Relative,
				Shell:    opts.Shell,
				Verbose:  opts.Verbose,
			}),
		})
	}
	return steps
}

func allSkipped(steps []*Step) bool {
	for _, s := range steps {
		if s.SkipReason() == "" {
			return false
		}
	}
	return true
}
