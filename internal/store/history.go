package store

import (
	"slices"

	"github.com/pablasso/tasktracker/internal/task"
)

// DefaultHistoryLimit is the number of undo snapshots kept.
const DefaultHistoryLimit = 50

// history is a bounded undo/redo log of full-list snapshots. Snapshots are
// deep copies, so later edits to the live list never reach them.
type history struct {
	past   [][]task.Task
	future [][]task.Task
	limit  int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// record pushes a snapshot of list and drops the redo stack.
func (h *history) record(list []task.Task) {
	h.past = append(h.past, task.CloneList(list))
	h.trim()
	h.future = nil
}

// undo pops the latest snapshot and parks current at the front of the redo stack.
func (h *history) undo(current []task.Task) ([]task.Task, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	last := len(h.past) - 1
	prev := h.past[last]
	h.past[last] = nil
	h.past = h.past[:last]
	h.future = slices.Insert(h.future, 0, task.CloneList(current))
	return prev, true
}

// redo takes the first redo snapshot and pushes current back onto the past.
func (h *history) redo(current []task.Task) ([]task.Task, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	next := h.future[0]
	h.future = slices.Delete(h.future, 0, 1)
	h.past = append(h.past, task.CloneList(current))
	h.trim()
	return next, true
}

func (h *history) reset() {
	h.past = nil
	h.future = nil
}

func (h *history) trim() {
	if over := len(h.past) - h.limit; over > 0 {
		h.past = slices.Delete(h.past, 0, over)
	}
}
