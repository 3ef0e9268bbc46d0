package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockFileName   = ".blobs.lock"
	lockRetryDelay = 25 * time.Millisecond
)

// FileStore writes one JSON file per key under a directory. Writes go to a
// temp file that is renamed into place, and a flock on a shared lock file
// keeps readers in other processes from seeing a half-replaced set.
type FileStore struct {
	dir  string
	lock *flock.Flock
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFileName)),
	}, nil
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, fileName(key))
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	locked, err := s.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.dir, err)
	}
	if locked {
		defer s.lock.Unlock()
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.dir, err)
	}
	if locked {
		defer s.lock.Unlock()
	}

	path := s.Path(key)
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := os.WriteFile(tmpPath, value, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return s.lock.Close()
}

// fileName maps a key onto a safe file name. Anything outside
// [A-Za-z0-9._-] becomes an underscore.
func fileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	if safe == "" || strings.Trim(safe, ".") == "" {
		safe = "_" + safe
	}
	return safe + ".json"
}
