package persist

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pablasso/tasktracker/internal/blob"
	"github.com/pablasso/tasktracker/internal/config"
	"github.com/pablasso/tasktracker/internal/store"
)

// Session is a hydrated store wired to save into its blob store.
type Session struct {
	Store   *store.TaskStore
	Adapter *Adapter
	Blobs   blob.Store

	// LoadErr is set when hydration failed. The store still works and
	// carries the error message, but the list started empty.
	LoadErr error

	unsubscribe func()
}

// Open builds the blob store selected by cfg, hydrates a new TaskStore from
// it and subscribes the adapter so every change is saved.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, opts ...store.Option) (*Session, error) {
	blobs, err := blob.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	return Attach(ctx, blobs, cfg, log, opts...), nil
}

// Attach is Open for an already opened blob store. The session owns blobs.
func Attach(ctx context.Context, blobs blob.Store, cfg *config.Config, log logrus.FieldLogger, opts ...store.Option) *Session {
	adapter := New(blobs, log.WithField("component", "persist"), cfg.Persist.SaveTimeout)
	s := store.New(append([]store.Option{store.WithLogger(log.WithField("component", "store"))}, opts...)...)

	sess := &Session{Store: s, Adapter: adapter, Blobs: blobs}
	if err := s.Hydrate(ctx, adapter); err != nil {
		sess.LoadErr = err
	}
	sess.unsubscribe = s.Subscribe(adapter.Observer())
	return sess
}

// Close stops saving and releases the blob store.
func (s *Session) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	return s.Blobs.Close()
}
