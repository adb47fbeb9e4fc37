package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/spachava753/lint-recently/internal/messages"
	"github.com/spachava753/lint-recently/internal/models"
)

// ErrTask is wrapped by every TaskError.
var ErrTask = errors.New("task failed")

// TaskError reports a command that failed, was killed, or was terminated by a
// signal. Tag is the signal name, "KILLED", the exit code, "ENOENT" for a
// missing binary, or "FAILED".
type TaskError struct {
	Command string
	Tag     string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s [%s]", e.Command, e.Tag)
}

func (e *TaskError) Unwrap() error {
	return ErrTask
}

// TaskFunc runs one unit of work and records its outcome in rc.
type TaskFunc func(ctx context.Context, rc *models.RunContext) error

// CommandOptions describes one configured command and the files it runs on.
type CommandOptions struct {
	Command string
	Files   []string
	// GitDir is the repository top level.
	GitDir string
	// Cwd is the directory lint-recently was invoked from.
	Cwd      string
	Relative bool
	Shell    models.Shell
	Verbose  bool
}

// ResolveTaskFunc turns a command and its files into a TaskFunc.
//
// Without a shell the command is split into argv with shell quoting rules and
// the files are appended as separate arguments. With a shell, the command and
// the space-joined files are passed as one string to the shell.
func ResolveTaskFunc(opts CommandOptions) TaskFunc {
	argv, parseErr := parseCommand(opts.Command)
	dir := commandDir(opts, argv)
	slog.Debug("resolved command", "command", opts.Command, "argv", argv, "dir", dir, "shell", opts.Shell.Enabled)

	return func(ctx context.Context, rc *models.RunContext) error {
		var cmd *exec.Cmd
		switch {
		case opts.Shell.Enabled:
			line := opts.Command
			if len(opts.Files) > 0 {
				line += " " + strings.Join(opts.Files, " ")
			}
			path, flag := shellCommand(opts.Shell.Path)
			cmd = exec.CommandContext(ctx, path, flag, line)
		case parseErr != nil:
			rc.AddError(models.ErrTask)
			handleOutput(opts.Command, commandResult{stderr: parseErr.Error()}, rc, "FAILED")
			return &TaskError{Command: opts.Command, Tag: "FAILED"}
		case len(argv) == 0:
			rc.AddError(models.ErrTask)
			rc.Inform(messages.TaskFailedWithoutOutput(opts.Command, "FAILED"))
			return &TaskError{Command: opts.Command, Tag: "FAILED"}
		default:
			args := append(argv[1:len(argv):len(argv)], opts.Files...)
			cmd = exec.CommandContext(ctx, argv[0], args...)
		}
		cmd.Dir = dir

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		result := commandResult{
			stdout: trimFinalNewline(stdout.String()),
			stderr: trimFinalNewline(stderr.String()),
		}
		if err != nil {
			tag := failureTag(ctx, err)
			slog.Debug("command failed", "command", opts.Command, "tag", tag, "error", err)
			rc.AddError(models.ErrTask)
			handleOutput(opts.Command, result, rc, tag)
			return &TaskError{Command: opts.Command, Tag: tag}
		}

		if opts.Verbose {
			handleOutput(opts.Command, result, rc, "")
		}
		return nil
	}
}

type commandResult struct {
	stdout string
	stderr string
}

// handleOutput appends a command's output to rc. A non-empty tag marks a
// failure; a failure without output still gets a notice.
func handleOutput(command string, result commandResult, rc *models.RunContext, tag string) {
	failed := tag != ""
	if result.stdout == "" && result.stderr == "" {
		if failed {
			rc.Inform(messages.TaskFailedWithoutOutput(command, tag))
		}
		return
	}

	var lines []string
	if !rc.Quiet() {
		title := messages.TaskOutput(command)
		if failed {
			title = messages.TaskFailed(command)
		}
		lines = append(lines, "", title)
	}
	if result.stderr != "" {
		lines = append(lines, result.stderr)
	}
	if result.stdout != "" {
		lines = append(lines, result.stdout)
	}
	rc.Append(strings.Join(lines, "\n"))
}

// parseCommand splits command into argv. The parser stops at unquoted shell
// operators, which only the shell option can run.
func parseCommand(command string) ([]string, error) {
	parser := shellwords.NewParser()
	argv, err := parser.Parse(command)
	if err != nil {
		return nil, err
	}
	if parser.Position >= 0 {
		return argv, fmt.Errorf("unquoted shell operator in %q; enable the shell option to run it", command)
	}
	return argv, nil
}

// commandDir picks the working directory: the invocation directory for
// relative paths, the repository top level for the git binary, and the
// invocation directory otherwise.
func commandDir(opts CommandOptions, argv []string) string {
	if opts.Relative {
		return opts.Cwd
	}
	if len(argv) > 0 && isGitBinary(argv[0]) && opts.GitDir != opts.Cwd {
		return opts.GitDir
	}
	return opts.Cwd
}

func isGitBinary(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	return base == "git" || base == "git.exe"
}

func shellCommand(path string) (string, string) {
	if runtime.GOOS == "windows" {
		if path == "" {
			path = "cmd.exe"
		}
		return path, "/c"
	}
	if path == "" {
		path = "/bin/sh"
	}
	return path, "-c"
}

func failureTag(ctx context.Context, err error) string {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return "ENOENT"
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig := signalTag(exitErr.ProcessState); sig != "" {
			return sig
		}
		if ctx.Err() != nil {
			return "KILLED"
		}
		if code := exitErr.ExitCode(); code > 0 {
			return strconv.Itoa(code)
		}
	}

	if ctx.Err() != nil {
		return "KILLED"
	}
	return "FAILED"
}

func trimFinalNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
