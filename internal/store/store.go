// Package store holds the task list state, its undo/redo history and the
// commands that change it.
//
// A TaskStore is safe for concurrent use. Every command runs under a single
// mutex, so no caller ever observes a half-applied change. Commands that
// change the task list notify subscribed observers after the change is
// committed; observers run synchronously, in commit order, and must not call
// back into the store.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pablasso/tasktracker/internal/task"
)

// Filter selects tasks by completion.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the completion filters in cycling order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// AllValues is the category and priority filter value that matches everything.
const AllValues = "all"

// State is a point-in-time copy of the store.
type State struct {
	List           []task.Task
	Filter         Filter
	Search         string
	CategoryFilter string
	PriorityFilter string
	TagFilter      string
	Hydrated       bool
	Error          string
	PastLen        int
	FutureLen      int
}

type state struct {
	list           []task.Task
	filter         Filter
	search         string
	categoryFilter string
	priorityFilter string
	tagFilter      string
	hydrated       bool
	err            string
}

// TaskStore owns the task list, the active filters and the history.
type TaskStore struct {
	mu      sync.Mutex
	st      state
	history *history

	// notifyMu keeps observer deliveries in commit order.
	notifyMu  sync.Mutex
	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int

	log   logrus.FieldLogger
	now   func() time.Time
	newID func() string
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithLogger sets the logger used for command tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *TaskStore) { s.log = l }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithIDGenerator overrides how fresh task ids are made.
func WithIDGenerator(fn func() string) Option {
	return func(s *TaskStore) { s.newID = fn }
}

// WithHistoryLimit sets how many undo snapshots are kept.
func WithHistoryLimit(n int) Option {
	return func(s *TaskStore) {
		if n > 0 {
			s.history.limit = n
		}
	}
}

// New creates an empty store. Call Hydrate to load persisted tasks.
func New(opts ...Option) *TaskStore {
	s := &TaskStore{
		st: state{
			list:           []task.Task{},
			filter:         FilterAll,
			categoryFilter: AllValues,
			priorityFilter: AllValues,
		},
		history:   newHistory(DefaultHistoryLimit),
		observers: make(map[int]Observer),
		log:       logrus.StandardLogger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep copy of the current state.
func (s *TaskStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		List:           task.CloneList(s.st.list),
		Filter:         s.st.filter,
		Search:         s.st.search,
		CategoryFilter: s.st.categoryFilter,
		PriorityFilter: s.st.priorityFilter,
		TagFilter:      s.st.tagFilter,
		Hydrated:       s.st.hydrated,
		Error:          s.st.err,
		PastLen:        len(s.history.past),
		FutureLen:      len(s.history.future),
	}
}

// List returns a copy of the task list in display order.
func (s *TaskStore) List() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.CloneList(s.st.list)
}

// Find returns the task with the given id.
func (s *TaskStore) Find(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.st.list[i].Clone(), true
	}
	return task.Task{}, false
}

// Error returns the last recorded failure message, or "".
func (s *TaskStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.err
}

// CanUndo reports whether there is a snapshot to undo to.
func (s *TaskStore) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history.past) > 0
}

// CanRedo reports whether there is a snapshot to redo to.
func (s *TaskStore) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history.future) > 0
}

// indexOf must be called with s.mu held.
func (s *TaskStore) indexOf(id string) int {
	for i := range s.st.list {
		if s.st.list[i].ID == id {
			return i
		}
	}
	return -1
}
