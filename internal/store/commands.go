package store

import (
	"slices"

	"github.com/pablasso/tasktracker/internal/task"
)

// AddTask normalizes rec into a new task and puts it at the front of the
// list. It returns false and changes nothing when the title is empty.
func (s *TaskStore) AddTask(rec task.Record) (task.Task, bool) {
	var added task.Task
	ok := s.mutate(CommandAdd, func() bool {
		t := task.Normalize(rec, s.now(), s.newID)
		if t.Title == "" {
			return false
		}
		if s.indexOf(t.ID) >= 0 {
			t.ID = s.newID()
		}
		s.history.record(s.st.list)
		s.st.list = slices.Insert(s.st.list, 0, t)
		added = t.Clone()
		return true
	})
	return added, ok
}

// UpdateTask applies the fields set in changes to the task with id. A task
// whose title ends up empty is removed. Unknown ids are ignored.
func (s *TaskStore) UpdateTask(id string, changes task.Changes) bool {
	return s.mutate(CommandUpdate, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.history.record(s.st.list)
		updated := s.st.list[i].Apply(changes, s.now())
		if updated.Title == "" {
			s.st.list = slices.Delete(s.st.list, i, i+1)
			return true
		}
		s.st.list[i] = updated
		return true
	})
}

// ToggleTask flips the completion flag of the task with id.
func (s *TaskStore) ToggleTask(id string) bool {
	return s.mutate(CommandToggle, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.history.record(s.st.list)
		s.st.list[i] = s.st.list[i].Apply(task.Changes{Completed: task.Ptr(!s.st.list[i].Completed)}, s.now())
		return true
	})
}

// DeleteTask removes the task with id.
func (s *TaskStore) DeleteTask(id string) bool {
	return s.mutate(CommandDelete, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.history.record(s.st.list)
		s.st.list = slices.Delete(s.st.list, i, i+1)
		return true
	})
}

// ReorderTasks moves the task activeID to the position currently held by
// overID, shifting the tasks in between by one.
func (s *TaskStore) ReorderTasks(activeID, overID string) bool {
	return s.mutate(CommandReorder, func() bool {
		if activeID == "" || overID == "" || activeID == overID {
			return false
		}
		from, to := s.indexOf(activeID), s.indexOf(overID)
		if from < 0 || to < 0 {
			return false
		}
		s.history.record(s.st.list)
		s.st.list = moveTask(s.st.list, from, to)
		return true
	})
}

// Undo restores the list as it was before the latest change.
func (s *TaskStore) Undo() bool {
	return s.mutate(CommandUndo, func() bool {
		prev, ok := s.history.undo(s.st.list)
		if !ok {
			return false
		}
		s.st.list = prev
		return true
	})
}

// Redo reapplies the change most recently undone.
func (s *TaskStore) Redo() bool {
	return s.mutate(CommandRedo, func() bool {
		next, ok := s.history.redo(s.st.list)
		if !ok {
			return false
		}
		s.st.list = next
		return true
	})
}

// ClearError dismisses the recorded error.
func (s *TaskStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.err = ""
}

func moveTask(list []task.Task, from, to int) []task.Task {
	out := slices.Clone(list)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}
