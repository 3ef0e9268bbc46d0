// Package persist saves the task list to a blob store and reads it back.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pablasso/tasktracker/internal/blob"
	"github.com/pablasso/tasktracker/internal/exchange"
	"github.com/pablasso/tasktracker/internal/store"
	"github.com/pablasso/tasktracker/internal/task"
)

const (
	// KeyV2 holds the current task list.
	KeyV2 = "task-tracker:tasks:v2"
	// KeyV1 is read when KeyV2 has never been written.
	KeyV1 = "tasks"
)

const defaultSaveTimeout = 2 * time.Second

// Adapter reads and writes the task list through a blob.Store.
type Adapter struct {
	blobs       blob.Store
	log         logrus.FieldLogger
	saveTimeout time.Duration
}

// New returns an Adapter. A zero saveTimeout uses two seconds.
func New(blobs blob.Store, log logrus.FieldLogger, saveTimeout time.Duration) *Adapter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if saveTimeout <= 0 {
		saveTimeout = defaultSaveTimeout
	}
	return &Adapter{blobs: blobs, log: log, saveTimeout: saveTimeout}
}

// Load returns the persisted array of task-like records. An absent or
// empty current key falls back to the legacy key. Data that does not parse
// as a JSON array loads as an empty list; only a failing backend is an
// error.
func (a *Adapter) Load(ctx context.Context) ([]any, error) {
	for _, key := range []string{KeyV2, KeyV1} {
		data, err := a.blobs.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) || (err == nil && len(data) == 0) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}

		raw, err := exchange.Parse(string(data))
		if err != nil {
			a.log.WithError(err).WithField("key", key).Warn("Ignoring unreadable stored tasks")
			return []any{}, nil
		}
		return raw, nil
	}
	return []any{}, nil
}

// Save writes list to the current key. Failures are logged and dropped so
// the in-memory list keeps working without persistence.
func (a *Adapter) Save(ctx context.Context, list []task.Task) {
	if list == nil {
		list = []task.Task{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		a.log.WithError(err).Warn("Failed to encode tasks")
		return
	}
	if err := a.blobs.Set(ctx, KeyV2, data); err != nil {
		a.log.WithError(err).WithField("key", KeyV2).Warn("Failed to save tasks")
		return
	}
	a.log.WithField("tasks", len(list)).Debug("Saved tasks")
}

// Observer returns a store observer that saves every committed list.
func (a *Adapter) Observer() store.Observer {
	return func(ev store.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), a.saveTimeout)
		defer cancel()
		a.Save(ctx, ev.List)
	}
}
