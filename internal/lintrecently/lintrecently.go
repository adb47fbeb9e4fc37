// Package lintrecently runs configured commands against files changed in the
// recent git history.
package lintrecently

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spachava753/lint-recently/internal/config"
	"github.com/spachava753/lint-recently/internal/executor"
	"github.com/spachava753/lint-recently/internal/git"
	"github.com/spachava753/lint-recently/internal/messages"
	"github.com/spachava753/lint-recently/internal/models"
	"github.com/spachava753/lint-recently/internal/render"
)

// Run validates opts, loads the config, runs every task, and prints the
// collected output through logger. It reports whether all tasks passed.
//
// A failed run is reported as false with a nil error. Errors are returned only
// when the run could not start: invalid options, or a missing or invalid config.
func Run(ctx context.Context, opts models.Options, logger models.Logger) (bool, error) {
	if err := config.ValidateShell(opts.Shell, logger); err != nil {
		return false, err
	}

	if opts.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return false, fmt.Errorf("getting working directory: %w", err)
		}
		opts.Cwd = wd
	}

	raw, source, err := loadConfig(opts)
	if errors.Is(err, config.ErrConfigNotFound) {
		logger.Error(messages.ConfigNotFound)
		return false, err
	}
	if err != nil {
		logger.Error(messages.CouldNotParseConfig(err.Error()))
		return false, err
	}
	slog.Debug("loaded config", "source", source)

	cfg, err := config.Validate(raw, logger)
	if err != nil {
		return false, err
	}

	if opts.Debug {
		logger.Log("Running lint-recently with the following config:")
		if formatted, err := config.Format(cfg); err == nil {
			logger.Log(formatted)
		}
	}

	git.UnsetAmbientEnv("GIT_LITERAL_PATHSPECS")

	rc, err := executor.RunAll(ctx, opts, cfg, logger)
	var runErr *executor.RunError
	if errors.As(err, &runErr) {
		slog.Debug("tasks failed", "errors", runErr.Context.Errors())
		render.PrintTaskOutput(runErr.Context, logger)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	slog.Debug("tasks were executed successfully")
	render.PrintTaskOutput(rc, logger)
	return true, nil
}

func loadConfig(opts models.Options) (*config.Raw, string, error) {
	switch {
	case opts.Config != nil:
		return config.FromConfig(*opts.Config), "(input)", nil
	case opts.ConfigPath != "":
		raw, err := config.Load(opts.ConfigPath)
		return raw, opts.ConfigPath, err
	default:
		return config.Search(opts.Cwd)
	}
}
