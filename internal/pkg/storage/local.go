package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes reports to a directory on the local filesystem.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) *LocalStore {
	return &LocalStore{basePath: basePath}
}

// Save implements ReportStore. The filename is flattened to its base
// so callers cannot escape the report directory.
func (s *LocalStore) Save(_ context.Context, filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(s.basePath, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
