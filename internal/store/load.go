package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pablasso/tasktracker/internal/exchange"
	"github.com/pablasso/tasktracker/internal/task"
)

// ErrHydration wraps any failure to read persisted tasks.
var ErrHydration = errors.New("Failed to load tasks from storage.")

const importFailedMsg = "Failed to import tasks from JSON."

// Loader reads the persisted task array. Elements are untyped task-like
// records; an empty result is not an error.
type Loader interface {
	Load(ctx context.Context) ([]any, error)
}

// Hydrate replaces the list with the tasks read from loader and resets the
// history. On failure the list is left empty, the error message is recorded
// and observers are not notified.
func (s *TaskStore) Hydrate(ctx context.Context, loader Loader) error {
	raw, err := loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.st.list = []task.Task{}
		s.history.reset()
		s.st.hydrated = true
		s.st.err = ErrHydration.Error()
		s.mu.Unlock()

		s.log.WithError(err).Warn("Hydrate failed")
		return fmt.Errorf("%w: %v", ErrHydration, err)
	}

	list := exchange.Normalize(raw, s.now(), s.newID)
	s.mutate(CommandHydrate, func() bool {
		s.st.list = list
		s.history.reset()
		s.st.hydrated = true
		s.st.err = ""
		return true
	})
	s.log.WithField("tasks", len(list)).Debug("Hydrated")
	return nil
}

// ImportTasksFromJSONText replaces the whole list with the tasks in text, a
// JSON array of task-like objects. The replacement is a single undoable
// change. On failure the list is untouched and the message is recorded; the
// returned error matches exchange.ErrParse or exchange.ErrShape.
func (s *TaskStore) ImportTasksFromJSONText(text string) error {
	list, err := exchange.Import(text, s.now(), s.newID)
	if err != nil {
		msg := importFailedMsg
		if errors.Is(err, exchange.ErrParse) || errors.Is(err, exchange.ErrShape) {
			msg = err.Error()
		}
		s.mu.Lock()
		s.st.err = msg
		s.mu.Unlock()

		s.log.WithError(err).Warn("Import failed")
		return err
	}

	s.mutate(CommandImport, func() bool {
		s.history.record(s.st.list)
		s.st.list = list
		s.st.err = ""
		return true
	})
	s.log.WithField("tasks", len(list)).Info("Imported tasks")
	return nil
}

// Export renders the current list as pretty-printed JSON.
func (s *TaskStore) Export() (string, error) {
	return exchange.Export(s.List())
}
