// Package storage keeps attachment bytes on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned when content exceeds the store's size cap.
var ErrTooLarge = errors.New("file too large")

// ErrNotFound is returned when no file exists under a key.
var ErrNotFound = errors.New("file not found")

// LocalFileStore stores files under baseDir. Keys are slash separated
// relative paths and may not leave baseDir.
type LocalFileStore struct {
	baseDir  string
	maxBytes int64
	logger   *slog.Logger
}

// NewLocalFileStore creates baseDir if needed.
func NewLocalFileStore(baseDir string, maxBytes int64, logger *slog.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalFileStore{baseDir: baseDir, maxBytes: maxBytes, logger: logger}, nil
}

// MaxBytes is the largest file Save accepts.
func (s *LocalFileStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save streams r to key and returns the bytes written. The file only
// appears under key once fully written; oversized content leaves nothing behind.
func (s *LocalFileStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if closeErr != nil {
		return 0, fmt.Errorf("failed to write file: %w", closeErr)
	}
	if n > s.maxBytes {
		return 0, ErrTooLarge
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return 0, fmt.Errorf("failed to move file into place: %w", err)
	}

	s.logger.DebugContext(ctx, "File saved", slog.String("key", key), slog.Int64("size", n))
	return n, nil
}

// Open returns a reader for key. The caller must close it.
func (s *LocalFileStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps key to an absolute path inside baseDir.
func (s *LocalFileStore) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(absBase, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes base directory: %s", key)
	}
	return absPath, nil
}
