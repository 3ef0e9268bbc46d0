// Package blob provides small key/value stores for serialized task lists.
//
// Every backend stores opaque bytes under string keys. Values are copied on
// the way in and out, so callers may reuse their buffers.
package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/pablasso/tasktracker/internal/config"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("blob: key not found")

// Store reads and writes blobs by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.DataDir)
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath())
	case config.BackendMySQL:
		return OpenMySQL(context.Background(), cfg.Storage.MySQL.DSN)
	case config.BackendRedis:
		return OpenRedis(cfg.Storage.Redis.URL, cfg.Storage.Redis.Prefix)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
