package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileGateway stores each key as a file under a base directory.
//
// Writes are atomic and durable: content goes to a temp file in the same
// directory, is fsynced, renamed over the target, and the directory is
// fsynced. A crash mid-write leaves either the old or the new snapshot,
// never a torn one.
type FileGateway struct {
	dir    string
	logger *zap.Logger
}

// NewFileGateway creates a filesystem-backed gateway rooted at dir.
// The directory is created lazily on the first write.
func NewFileGateway(dir string, logger *zap.Logger) (*FileGateway, error) {
	if dir == "" {
		return nil, errors.New("storage: directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileGateway{dir: dir, logger: logger}, nil
}

// Path returns the file path a key maps to.
func (fg *FileGateway) Path(key string) string {
	return filepath.Join(fg.dir, filepath.FromSlash(key))
}

// Exists reports whether a file is stored under key.
func (fg *FileGateway) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	info, err := os.Stat(fg.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", key, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("storage: key %q is a directory", key)
	}
	return true, nil
}

// Read returns the content stored under key, or ErrNotFound.
func (fg *FileGateway) Read(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	data, err := os.ReadFile(fg.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("reading %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), nil
}

// Write replaces the content stored under key.
func (fg *FileGateway) Write(_ context.Context, key, content string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := fg.Path(key)
	if err := writeFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	fg.logger.Debug("blob written", zap.String("key", key), zap.Int("bytes", len(content)))
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
