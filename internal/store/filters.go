package store

// SetFilter sets the completion filter.
func (s *TaskStore) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.filter = f
}

// SetSearch sets the free-text search.
func (s *TaskStore) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.search = q
}

// SetCategoryFilter sets the category filter; AllValues disables it.
func (s *TaskStore) SetCategoryFilter(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.categoryFilter = category
}

// SetPriorityFilter sets the priority filter; AllValues disables it.
func (s *TaskStore) SetPriorityFilter(priority string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.priorityFilter = priority
}

// SetTagFilter sets the tag filter; "" disables it.
func (s *TaskStore) SetTagFilter(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.tagFilter = tag
}

// ClearAdvancedFilters resets the category, priority and tag filters. The
// completion filter and search are kept.
func (s *TaskStore) ClearAdvancedFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.categoryFilter = AllValues
	s.st.priorityFilter = AllValues
	s.st.tagFilter = ""
}
