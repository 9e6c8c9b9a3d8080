package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned when no .git entry exists in a path's ancestor chain.
var ErrNotRepository = errors.New("not inside a git repository")

// Operations defines the interface for git operations.
// This allows mocking git commands in tests.
type Operations interface {
	// FindRepositoryRoot walks path and its parents looking for a .git
	// directory or file and returns the directory that contains it.
	FindRepositoryRoot(path string) (string, error)

	// GetCurrentBranch returns the current branch name.
	// For detached HEAD, returns "detached-{short-hash}".
	// Returns "unknown" if all git commands fail.
	GetCurrentBranch(repoRoot string) string

	// CreateBranch creates and checks out a new branch.
	CreateBranch(repoRoot, name string) error

	// Commit stages every working-tree change and commits it.
	Commit(repoRoot, message string) error
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) FindRepositoryRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := abs
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", abs, ErrNotRepository)
		}
		dir = parent
	}
}

func (g *gitOps) GetCurrentBranch(repoRoot string) string {
	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = repoRoot
	output, err := cmd.Output()
	if err != nil || len(strings.TrimSpace(string(output))) == 0 {
		// Might be detached HEAD
		cmd = exec.Command("git", "rev-parse", "--short", "HEAD")
		cmd.Dir = repoRoot
		output, err = cmd.Output()
		if err != nil {
			return "unknown"
		}
		return "detached-" + strings.TrimSpace(string(output))
	}
	return strings.TrimSpace(string(output))
}

func (g *gitOps) CreateBranch(repoRoot, name string) error {
	if err := run(repoRoot, "checkout", "-b", name); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

func (g *gitOps) Commit(repoRoot, message string) error {
	if err := run(repoRoot, "add", "."); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := run(repoRoot, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	return nil
}

// run executes a git subcommand and folds its combined output into the error.
func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}
