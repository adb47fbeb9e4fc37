package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/spachava753/lint-recently/internal/messages"
	"github.com/spachava753/lint-recently/internal/models"
	"github.com/spachava753/lint-recently/internal/task"
)

// DefaultConfig returns a Config with default values and no patterns.
func DefaultConfig() models.Config {
	return models.Config{
		Days: models.DefaultDays,
	}
}

// Validate checks a parsed config and converts it to a models.Config.
// Patterns with single-value braces are rewritten and reported via logger.Warn.
// All problems are collected, reported via logger.Error, and returned together.
func Validate(raw *Raw, logger models.Logger) (models.Config, error) {
	slog.Debug("validating config")
	cfg := DefaultConfig()

	var errs []string
	if raw == nil || !raw.HasPatterns || len(raw.Patterns) == 0 {
		errs = append(errs, "Configuration should contain a non-empty 'patterns' mapping.")
	}

	if raw != nil && raw.HasDays {
		days, ok := toInt(raw.Days)
		if !ok || days < 1 {
			errs = append(errs, messages.ConfigurationError("days", "Should be an integer greater than or equal to 1.", raw.Days))
		} else {
			cfg.Days = days
		}
	}

	index := make(map[string]int)
	if raw != nil {
		for _, entry := range raw.Patterns {
			commands, ok := toCommands(entry.Value)
			if !ok {
				errs = append(errs, messages.ConfigurationError(entry.Pattern, "Should be a string or a non-empty array of strings.", entry.Value))
				continue
			}

			pattern, changed := task.FixBraces(entry.Pattern)
			if changed {
				logger.Warn(messages.IncorrectBraces(entry.Pattern, pattern))
			}
			if !doublestar.ValidatePattern(pattern) {
				errs = append(errs, messages.ConfigurationError(entry.Pattern, "Should be a valid glob pattern.", entry.Value))
				continue
			}

			// A rewritten pattern can collide with an existing one; the later
			// commands win and the first position is kept.
			if i, ok := index[pattern]; ok {
				cfg.Patterns[i].Commands = commands
				continue
			}
			index[pattern] = len(cfg.Patterns)
			cfg.Patterns = append(cfg.Patterns, models.PatternCommands{Pattern: pattern, Commands: commands})
		}
	}

	if len(errs) > 0 {
		details := strings.Join(errs, "\n\n")
		logger.Error(messages.CouldNotParseConfig(details))
		return cfg, fmt.Errorf("%w: %s", ErrInvalidConfig, details)
	}

	slog.Debug("validated config", "days", cfg.Days, "patterns", len(cfg.Patterns))
	return cfg, nil
}

// ValidateShell checks that an explicit shell path is executable.
func ValidateShell(shell models.Shell, logger models.Logger) error {
	if shell.Path == "" {
		return nil
	}
	slog.Debug("validating shell", "path", shell.Path)

	if err := checkExecutable(shell.Path); err != nil {
		logger.Error(messages.InvalidOption("shell", shell.Path, err.Error()))
		return fmt.Errorf("%w: shell: %w", ErrInvalidOptions, err)
	}
	return nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		return errors.New("permission denied: " + path)
	}
	return nil
}

func toCommands(v any) ([]string, bool) {
	switch v := v.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, len(v) > 0
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
