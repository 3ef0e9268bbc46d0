package store

import (
	"math"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pablasso/tasktracker/internal/task"
)

// Stats summarizes the task list.
type Stats struct {
	Total     int
	Active    int
	Completed int
	// Percent is the completed share rounded to the nearest integer.
	Percent int
}

// Visible returns the tasks that pass the current filters, in list order.
func (s *TaskStore) Visible() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(s.st.search))
	out := []task.Task{}
	for _, t := range s.st.list {
		if s.st.matches(t, q) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// matches applies the completion, category, priority, tag and search
// filters in that order. q must already be trimmed and lowercased.
func (st *state) matches(t task.Task, q string) bool {
	switch st.filter {
	case FilterActive:
		if t.Completed {
			return false
		}
	case FilterCompleted:
		if !t.Completed {
			return false
		}
	}
	if st.categoryFilter != AllValues && t.Category != st.categoryFilter {
		return false
	}
	if st.priorityFilter != AllValues && string(t.Priority) != st.priorityFilter {
		return false
	}
	if st.tagFilter != "" && !t.HasTag(st.tagFilter) {
		return false
	}
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Category), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Categories returns the distinct non-empty categories, sorted.
func (s *TaskStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]struct{})
	for _, t := range s.st.list {
		if c := strings.TrimSpace(t.Category); c != "" {
			set[c] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Tags returns the distinct non-empty tags, sorted.
func (s *TaskStore) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]struct{})
	for _, t := range s.st.list {
		for _, tag := range t.Tags {
			if v := strings.TrimSpace(tag); v != "" {
				set[v] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// Stats returns aggregate counts for the whole list, ignoring filters.
func (s *TaskStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeStats(s.st.list)
}

func computeStats(list []task.Task) Stats {
	st := Stats{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	if st.Total > 0 {
		st.Percent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// sortedKeys returns the set in locale collation order ("apple" sits next to
// "Apple", not after "Zebra").
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	collate.New(language.Und).SortStrings(out)
	return out
}
