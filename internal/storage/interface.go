package storage

import (
	"context"
)

// Store defines read-side access to dataset files. Dataset sources are
// either local paths or GCS objects; HTTP sources bypass this layer.
type Store interface {
	// Close closes the store
	Close() error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)

	// ListDir lists file paths under a directory or object prefix
	ListDir(ctx context.Context, dirPath string) ([]string, error)
}
