package git

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// globalOptions are prepended to every git invocation. Submodule recursion is
// disabled so output does not depend on user or global git configuration.
var globalOptions = []string{"-c", "submodule.recurse=false"}

// ambientVars change how git interprets paths and are never passed through.
var ambientVars = []string{"GIT_DIR", "GIT_WORK_TREE", "GIT_LITERAL_PATHSPECS"}

// CommandError is returned when git exits non-zero, is killed, or cannot start.
// Output holds stdout and stderr interleaved as git wrote them.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Output)
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// RunOptions configures a single git invocation.
type RunOptions struct {
	// Dir is the working directory; empty means the process cwd.
	Dir string
	// Env holds variables added on top of the filtered process environment.
	Env map[string]string
}

// Run executes git with the global options and args, returning stdout with a
// single trailing newline removed.
func Run(ctx context.Context, args []string, opts RunOptions) (string, error) {
	slog.Debug("running git command", "args", args, "dir", opts.Dir)

	cmd := exec.CommandContext(ctx, "git", append(append([]string{}, globalOptions...), args...)...)
	cmd.Dir = opts.Dir
	cmd.Env = cleanEnv(opts.Env)

	var stdout bytes.Buffer
	all := &lockedBuffer{}
	cmd.Stdout = &teeWriter{primary: &stdout, all: all}
	cmd.Stderr = all

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Output: all.String(), Err: err}
	}

	return stripFinalNewline(stdout.String()), nil
}

// UnsetAmbientEnv removes the named variables from the process environment, or
// every variable that changes git path interpretation when none are named.
// Spawned commands then resolve the repository from their own cwd.
func UnsetAmbientEnv(names ...string) {
	if len(names) == 0 {
		names = ambientVars
	}
	for _, name := range names {
		if old, ok := os.LookupEnv(name); ok {
			slog.Debug("unsetting environment variable", "name", name, "was", old)
			os.Unsetenv(name)
		}
	}
}

func cleanEnv(overrides map[string]string) []string {
	env := make([]string, 0, len(os.Environ())+len(overrides))
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if isAmbient(name) {
			continue
		}
		if _, ok := overrides[name]; ok {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

func isAmbient(name string) bool {
	for _, v := range ambientVars {
		if v == name {
			return true
		}
	}
	return false
}

func stripFinalNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// Normalize converts a path to forward-slash form.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// lockedBuffer serializes writes from the stdout and stderr copy goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type teeWriter struct {
	primary *bytes.Buffer
	all     *lockedBuffer
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.primary.Write(p)
	return w.all.Write(p)
}
