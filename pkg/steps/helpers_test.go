package steps

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// writeTestFile writes content to a file in dir, failing the test on error.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func skipWithoutGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not in PATH")
	}
}

// initTestRepo creates a git repository with one commit on branch main and a
// bare clone wired up as origin, so push has somewhere to go.
func initTestRepo(t *testing.T) string {
	t.Helper()
	skipWithoutGit(t)

	base := t.TempDir()
	remote := filepath.Join(base, "remote.git")
	work := filepath.Join(base, "work")

	mustGit(t, base, "init", "--bare", "--initial-branch=main", remote)
	mustGit(t, base, "init", "--initial-branch=main", work)
	mustGit(t, work, "config", "user.name", "tester")
	mustGit(t, work, "config", "user.email", "tester@example.com")
	mustGit(t, work, "remote", "add", "origin", remote)

	writeTestFile(t, work, "README.md", "# test\n")
	mustGit(t, work, "add", "-A")
	mustGit(t, work, "commit", "-m", "initial")
	mustGit(t, work, "push", "-u", "origin", "main")

	return work
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if out, err := runCommand(dir, "git", args...); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
