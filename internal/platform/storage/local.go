package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes files below a root directory.
type LocalStore struct {
	root string
	now  func() time.Time
}

// NewLocalStore creates the root directory when it does not exist.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{root: root, now: time.Now}, nil
}

// Save writes content and returns the location relative to the root.
func (s *LocalStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	location := objectName(s.now().UTC(), name)
	target := filepath.Join(s.root, filepath.FromSlash(location))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return location, nil
}

// Open opens a file written by Save.
func (s *LocalStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	clean := filepath.Clean(filepath.FromSlash(location))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	f, err := os.Open(filepath.Join(s.root, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	return f, err
}
