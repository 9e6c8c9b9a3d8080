package splitter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// recreateDir removes dir and everything in it, then creates it empty.
func recreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// replaceFile overwrites path through a temp file in the same directory and a
// rename, keeping the existing file's permissions.
func replaceFile(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	// WriteFile honours umask; the rename target should match the original exactly.
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
