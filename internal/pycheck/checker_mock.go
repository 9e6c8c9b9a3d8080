package pycheck

import "context"

// MockChecker is a mock implementation of Checker for testing.
type MockChecker struct {
	FilesError  error
	SourceError error

	// Recorded calls
	CheckedFiles   []string
	CheckedSources []string
}

func (m *MockChecker) CheckFiles(ctx context.Context, paths []string) error {
	m.CheckedFiles = append(m.CheckedFiles, paths...)
	return m.FilesError
}

func (m *MockChecker) CheckSource(ctx context.Context, name, source string) error {
	m.CheckedSources = append(m.CheckedSources, name)
	return m.SourceError
}
