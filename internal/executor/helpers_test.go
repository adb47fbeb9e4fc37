package executor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingLogger struct {
	mu                  sync.Mutex
	logs, warns, errors []string
}

func (l *recordingLogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.logs...)
}

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available in PATH", name)
	}
}

// testRepo creates an empty repository with a committer identity configured.
func testRepo(t *testing.T) string {
	t.Helper()
	requireCommand(t, "git")
	dir := t.TempDir()
	gitCmd(t, dir, time.Time{}, "init")
	gitCmd(t, dir, time.Time{}, "config", "user.email", "test@example.com")
	gitCmd(t, dir, time.Time{}, "config", "user.name", "Test User")
	gitCmd(t, dir, time.Time{}, "config", "commit.gpgsign", "false")
	return dir
}

func gitCmd(t *testing.T, dir string, at time.Time, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "GIT_DIR=") || strings.HasPrefix(kv, "GIT_WORK_TREE=") {
			continue
		}
		cmd.Env = append(cmd.Env, kv)
	}
	if !at.IsZero() {
		stamp := fmt.Sprintf("%d +0000", at.Unix())
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_DATE="+stamp, "GIT_COMMITTER_DATE="+stamp)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func commitFiles(t *testing.T, dir string, at time.Time, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	gitCmd(t, dir, at, "add", "-A")
	gitCmd(t, dir, at, "commit", "-m", "commit at "+at.Format(time.RFC3339))
}

// recentRepo creates a repository with a commit ten days ago and a commit
// today touching the given files.
func recentRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := testRepo(t)
	now := time.Now()
	commitFiles(t, dir, now.AddDate(0, 0, -10), map[string]string{"README": "old"})
	commitFiles(t, dir, now, files)
	return dir
}
