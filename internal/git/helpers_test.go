package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
}

// testRepo creates an empty repository with a committer identity configured.
func testRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	gitCmd(t, dir, time.Time{}, "init")
	gitCmd(t, dir, time.Time{}, "config", "user.email", "test@example.com")
	gitCmd(t, dir, time.Time{}, "config", "user.name", "Test User")
	gitCmd(t, dir, time.Time{}, "config", "commit.gpgsign", "false")
	return dir
}

// gitCmd runs git in dir. A non-zero at sets both author and committer dates.
func gitCmd(t *testing.T, dir string, at time.Time, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = cleanEnv(nil)
	if !at.IsZero() {
		stamp := fmt.Sprintf("%d +0000", at.Unix())
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_DATE="+stamp, "GIT_COMMITTER_DATE="+stamp)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

// commitFiles writes files and commits them at the given time.
func commitFiles(t *testing.T, dir string, at time.Time, files map[string]string) {
	t.Helper()
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	gitCmd(t, dir, at, "add", "-A")
	gitCmd(t, dir, at, "commit", "-m", fmt.Sprintf("commit at %s", at.Format(time.RFC3339)))
}
