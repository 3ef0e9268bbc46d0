package store

import (
	"slices"

	"github.com/pablasso/tasktracker/internal/task"
)

// Command names a state-changing store command.
type Command string

const (
	CommandAdd     Command = "add"
	CommandUpdate  Command = "update"
	CommandToggle  Command = "toggle"
	CommandDelete  Command = "delete"
	CommandReorder Command = "reorder"
	CommandUndo    Command = "undo"
	CommandRedo    Command = "redo"
	CommandHydrate Command = "hydrate"
	CommandImport  Command = "import"
)

// Event is delivered to observers after a command changed the task list.
// List is a private copy the observer may keep.
type Event struct {
	Command Command
	List    []task.Task
}

// Observer receives committed changes.
type Observer func(Event)

// Subscribe registers fn for every committed change to the task list. Filter
// changes are view state and are not delivered. The returned function
// removes the subscription.
func (s *TaskStore) Subscribe(fn Observer) func() {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

// mutate runs fn under the state lock. When fn reports a change, observers
// are notified after the lock is released.
func (s *TaskStore) mutate(cmd Command, fn func() bool) bool {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	ev := Event{Command: cmd, List: task.CloneList(s.st.list)}
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.log.WithField("command", cmd).WithField("tasks", len(ev.List)).Debug("Task list changed")
	for _, obs := range s.snapshotObservers() {
		obs(Event{Command: ev.Command, List: task.CloneList(ev.List)})
	}
	return true
}

func (s *TaskStore) snapshotObservers() []Observer {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = s.observers[id]
	}
	return out
}
