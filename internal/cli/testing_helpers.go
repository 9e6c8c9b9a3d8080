package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvp-joe/pysplit/internal/git"
	"github.com/stretchr/testify/require"
)

// initGitRepo initializes a git repository with a main branch and one commit.
// Only end-to-end tests need this; prefer git.NewMockGitOps() elsewhere.
func initGitRepo(t *testing.T, dir string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	require.NoError(t, os.MkdirAll(dir, 0755))

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@example.com")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test\n"), 0644))
	runGit(t, dir, "add", "README.md")
	runGit(t, dir, "commit", "-m", "Initial commit")
}

// runGit runs a git command in dir and returns its trimmed stdout.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// writePython writes a script under dir and returns its path.
func writePython(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testEnv returns an environment backed by the mock that captures output.
func testEnv(mock *git.MockGitOps) (runEnv, *bytes.Buffer) {
	var out bytes.Buffer
	return runEnv{git: mock, out: &out}, &out
}
