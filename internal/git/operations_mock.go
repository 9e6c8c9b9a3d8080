package git

import "fmt"

// MockGitOps is a mock implementation of Operations for testing.
type MockGitOps struct {
	RepositoryRoot string // empty means "not a repository"
	CurrentBranch  string
	CreateError    error
	CommitError    error

	// Recorded calls
	CreatedBranches []string
	Commits         []string
}

// NewMockGitOps creates a mock with sensible defaults.
func NewMockGitOps() *MockGitOps {
	return &MockGitOps{
		RepositoryRoot: "/tmp/test-repo",
		CurrentBranch:  "main",
	}
}

func (m *MockGitOps) FindRepositoryRoot(path string) (string, error) {
	if m.RepositoryRoot == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNotRepository)
	}
	return m.RepositoryRoot, nil
}

func (m *MockGitOps) GetCurrentBranch(repoRoot string) string {
	return m.CurrentBranch
}

func (m *MockGitOps) CreateBranch(repoRoot, name string) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.CreatedBranches = append(m.CreatedBranches, name)
	m.CurrentBranch = name
	return nil
}

func (m *MockGitOps) Commit(repoRoot, message string) error {
	if m.CommitError != nil {
		return m.CommitError
	}
	m.Commits = append(m.Commits, message)
	return nil
}

// String returns a human-readable representation of the mock state.
func (m *MockGitOps) String() string {
	return fmt.Sprintf("MockGitOps{root=%s, branch=%s, commits=%d}",
		m.RepositoryRoot, m.CurrentBranch, len(m.Commits))
}
