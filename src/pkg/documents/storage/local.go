package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBackend implements Backend on a local filesystem directory.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalBackend{root: root}, nil
}

// blobPath confines name to the root directory. Stored names are composed
// from a sanitized original name, so Base is a backstop, not a feature.
func (b *LocalBackend) blobPath(name string) string {
	return filepath.Join(b.root, filepath.Base(name))
}

func (b *LocalBackend) Store(name string, data io.Reader) (retErr error) {
	file, createErr := os.Create(filepath.Clean(b.blobPath(name)))
	if createErr != nil {
		return fmt.Errorf("failed to create blob: %w", createErr)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			if retErr == nil {
				retErr = closeErr
			} else {
				retErr = errors.Join(retErr, closeErr)
			}
		}
	}()

	if _, copyErr := io.Copy(file, data); copyErr != nil {
		return fmt.Errorf("failed to write blob: %w", copyErr)
	}
	return nil
}

func (b *LocalBackend) Open(name string) (io.ReadCloser, error) {
	file, openErr := os.Open(filepath.Clean(b.blobPath(name)))
	if openErr != nil {
		return nil, openErr
	}
	return file, nil
}

func (b *LocalBackend) Remove(name string) error {
	return os.Remove(filepath.Clean(b.blobPath(name)))
}

func (b *LocalBackend) Exists(name string) (bool, error) {
	_, statErr := os.Stat(b.blobPath(name))
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return false, nil
		}
		return false, statErr
	}
	return true, nil
}
