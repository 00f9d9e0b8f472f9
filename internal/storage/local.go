package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalStore reads dataset files from a base directory on the local
// file system
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a new local store rooted at baseDir
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Close is a no-op for local storage (implements the same interface as GCSStore)
func (l *LocalStore) Close() error {
	return nil
}

// GetFile retrieves a file relative to the base directory. Absolute paths
// are used as-is.
func (l *LocalStore) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(l.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// FileExists checks if a file exists under the base directory
func (l *LocalStore) FileExists(ctx context.Context, filePath string) (bool, error) {
	_, err := os.Stat(l.resolve(filePath))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListDir lists files under a directory, relative to the base directory,
// sorted by path
func (l *LocalStore) ListDir(ctx context.Context, dirPath string) ([]string, error) {
	root := l.resolve(dirPath)

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries and continue
		}
		if info.IsDir() {
			return nil
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *LocalStore) resolve(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(l.baseDir, filePath)
}
