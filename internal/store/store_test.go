package store

import (
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/pablasso/tasktracker/internal/task"
	"github.com/pablasso/tasktracker/internal/testutil"
)

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func newTestStore(t *testing.T) *TaskStore {
	t.Helper()
	return New(
		WithLogger(nullLogger()),
		WithClock(testutil.NewClock().Now),
		WithIDGenerator(testutil.SequentialIDs()),
	)
}

func titles(list []task.Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Title
	}
	return out
}

func mustAdd(t *testing.T, s *TaskStore, rec task.Record) task.Task {
	t.Helper()
	added, ok := s.AddTask(rec)
	if !ok {
		t.Fatalf("AddTask(%v) was a no-op", rec)
	}
	return added
}

func TestNew_InitialState(t *testing.T) {
	s := newTestStore(t)
	st := s.State()

	if len(st.List) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(st.List))
	}
	if st.Filter != FilterAll || st.CategoryFilter != AllValues || st.PriorityFilter != AllValues || st.TagFilter != "" {
		t.Errorf("unexpected initial filters: %+v", st)
	}
	if st.Hydrated || st.Error != "" || st.PastLen != 0 || st.FutureLen != 0 {
		t.Errorf("unexpected initial state: %+v", st)
	}
}

func TestAddTask_Defaults(t *testing.T) {
	s := newTestStore(t)

	added := mustAdd(t, s, task.Record{"title": "Test", "priority": "high"})

	got, ok := s.Find(added.ID)
	if !ok {
		t.Fatalf("task %s not found", added.ID)
	}
	if got.Title != "Test" || got.Completed || got.Priority != task.PriorityHigh {
		t.Errorf("unexpected task: %#v", got)
	}
	if got.CreatedAt == "" || got.CreatedAt != got.UpdatedAt {
		t.Errorf("expected matching creation timestamps, got %q / %q", got.CreatedAt, got.UpdatedAt)
	}
	if st := s.State(); st.PastLen != 1 {
		t.Errorf("expected 1 history entry, got %d", st.PastLen)
	}
}

func TestAddTask_Normalization(t *testing.T) {
	s := newTestStore(t)

	added := mustAdd(t, s, task.Record{"title": "  X ", "priority": "xyz", "tags": "a, ,b"})
	got, _ := s.Find(added.ID)

	if got.Title != "X" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Priority != task.PriorityMedium {
		t.Errorf("Priority = %q, want medium", got.Priority)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", got.Tags)
	}

	low := mustAdd(t, s, task.Record{"title": "Y", "priority": "LOW"})
	if low.Priority != task.PriorityLow {
		t.Errorf("Priority = %q, want low", low.Priority)
	}
}

func TestAddTask_EmptyTitleIsNoop(t *testing.T) {
	s := newTestStore(t)

	for _, title := range []any{"", "   ", nil} {
		if _, ok := s.AddTask(task.Record{"title": title}); ok {
			t.Errorf("AddTask(title=%#v) should be a no-op", title)
		}
	}
	st := s.State()
	if len(st.List) != 0 || st.PastLen != 0 {
		t.Errorf("expected no change, got %d tasks and %d history entries", len(st.List), st.PastLen)
	}
}

func TestAddTask_PrependsNewest(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, task.Record{"title": "A"})
	mustAdd(t, s, task.Record{"title": "B"})
	mustAdd(t, s, task.Record{"title": "C"})

	if got := titles(s.List()); !reflect.DeepEqual(got, []string{"C", "B", "A"}) {
		t.Errorf("order = %v, want [C B A]", got)
	}
}

func TestAddTask_TagCap(t *testing.T) {
	s := newTestStore(t)
	tags := []any{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10", "t11", "t12"}

	added := mustAdd(t, s, task.Record{"title": "tagged", "tags": tags})

	want := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10"}
	if !reflect.DeepEqual(added.Tags, want) {
		t.Errorf("Tags = %v, want %v", added.Tags, want)
	}
}

func TestAddTask_DuplicateIDGetsFreshOne(t *testing.T) {
	s := newTestStore(t)
	first := mustAdd(t, s, task.Record{"id": "fixed", "title": "A"})
	second := mustAdd(t, s, task.Record{"id": "fixed", "title": "B"})

	if first.ID != "fixed" {
		t.Errorf("first id = %q", first.ID)
	}
	if second.ID == "fixed" {
		t.Error("expected a fresh id for the duplicate")
	}
}

func TestUpdateTask_Partial(t *testing.T) {
	s := newTestStore(t)
	added := mustAdd(t, s, task.Record{"title": "A", "priority": "low", "category": "Home"})

	if !s.UpdateTask(added.ID, task.Changes{Category: task.Ptr(" Work ")}) {
		t.Fatal("UpdateTask returned false")
	}

	got, _ := s.Find(added.ID)
	if got.Title != "A" || got.Priority != task.PriorityLow {
		t.Errorf("omitted fields changed: %#v", got)
	}
	if got.Category != "Work" {
		t.Errorf("Category = %q, want Work", got.Category)
	}
	if got.UpdatedAt == added.UpdatedAt {
		t.Error("expected UpdatedAt to be refreshed")
	}
	if got.CreatedAt != added.CreatedAt {
		t.Error("CreatedAt must not change")
	}
	if st := s.State(); st.PastLen != 2 {
		t.Errorf("expected 2 history entries, got %d", st.PastLen)
	}
}

func TestUpdateTask_EmptyTitleRemovesTask(t *testing.T) {
	s := newTestStore(t)
	keep := mustAdd(t, s, task.Record{"title": "keep"})
	drop := mustAdd(t, s, task.Record{"title": "A"})

	if !s.UpdateTask(drop.ID, task.Changes{Title: task.Ptr(""), Category: task.Ptr("Work")}) {
		t.Fatal("UpdateTask returned false")
	}

	list := s.List()
	if len(list) != 1 || list[0].ID != keep.ID {
		t.Fatalf("expected only %q to remain, got %v", keep.ID, titles(list))
	}
	for _, tk := range list {
		if tk.Title == "" {
			t.Error("found residual task with empty title")
		}
	}
}

func TestUpdateTask_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, task.Record{"title": "A"})

	if s.UpdateTask("missing", task.Changes{Title: task.Ptr("B")}) {
		t.Error("expected false for unknown id")
	}
	if st := s.State(); st.PastLen != 1 {
		t.Errorf("unknown id must not snapshot, got %d entries", st.PastLen)
	}
}

func TestToggleTask(t *testing.T) {
	s := newTestStore(t)
	added := mustAdd(t, s, task.Record{"title": "A"})

	if !s.ToggleTask(added.ID) {
		t.Fatal("ToggleTask returned false")
	}
	got, _ := s.Find(added.ID)
	if !got.Completed {
		t.Error("expected task to be completed")
	}
	if got.UpdatedAt == added.UpdatedAt {
		t.Error("expected UpdatedAt to be refreshed")
	}

	s.ToggleTask(added.ID)
	got, _ = s.Find(added.ID)
	if got.Completed {
		t.Error("expected second toggle to clear completion")
	}

	if s.ToggleTask("missing") {
		t.Error("expected false for unknown id")
	}
	if st := s.State(); st.PastLen != 3 {
		t.Errorf("expected 3 history entries, got %d", st.PastLen)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	added := mustAdd(t, s, task.Record{"title": "A"})

	if s.DeleteTask("missing") {
		t.Error("expected false for unknown id")
	}
	if !s.DeleteTask(added.ID) {
		t.Fatal("DeleteTask returned false")
	}
	if len(s.List()) != 0 {
		t.Error("expected empty list after delete")
	}
	if s.DeleteTask(added.ID) {
		t.Error("second delete of the same id should be a no-op")
	}
	if st := s.State(); st.PastLen != 2 {
		t.Errorf("expected 2 history entries, got %d", st.PastLen)
	}
}

func TestReorderTasks(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, task.Record{"title": "A"})
	b := mustAdd(t, s, task.Record{"title": "B"})

	// Order is B, A; dragging A onto B moves it to the front.
	if !s.ReorderTasks(a.ID, b.ID) {
		t.Fatal("ReorderTasks returned false")
	}
	if got := titles(s.List()); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("order = %v, want [A B]", got)
	}
}

func TestReorderTasks_MoveNotSwap(t *testing.T) {
	s := newTestStore(t)
	ids := map[string]string{}
	for _, title := range []string{"E", "D", "C", "B", "A"} {
		ids[title] = mustAdd(t, s, task.Record{"title": title}).ID
	}
	// A B C D E

	s.ReorderTasks(ids["A"], ids["D"])
	if got := titles(s.List()); !reflect.DeepEqual(got, []string{"B", "C", "D", "A", "E"}) {
		t.Errorf("forward move = %v", got)
	}

	s.ReorderTasks(ids["E"], ids["C"])
	if got := titles(s.List()); !reflect.DeepEqual(got, []string{"B", "E", "C", "D", "A"}) {
		t.Errorf("backward move = %v", got)
	}
}

func TestReorderTasks_Noops(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, task.Record{"title": "A"})
	mustAdd(t, s, task.Record{"title": "B"})
	before := s.State()

	tests := []struct {
		name           string
		active, overID string
	}{
		{"same id", a.ID, a.ID},
		{"empty active", "", a.ID},
		{"empty over", a.ID, ""},
		{"missing active", "missing", a.ID},
		{"missing over", a.ID, "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s.ReorderTasks(tt.active, tt.overID) {
				t.Error("expected no-op")
			}
			after := s.State()
			if !reflect.DeepEqual(after.List, before.List) || after.PastLen != before.PastLen {
				t.Error("no-op reorder changed state")
			}
		})
	}
}

func TestUndoRedo(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, task.Record{"title": "A"})
	mustAdd(t, s, task.Record{"title": "B"})

	if !s.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := titles(s.List()); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("after undo = %v, want [A]", got)
	}

	if !s.Redo() {
		t.Fatal("Redo returned false")
	}
	if got := titles(s.List()); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("after redo = %v, want [B A]", got)
	}
}

func TestUndoRedo_EmptyStacksAreNoops(t *testing.T) {
	s := newTestStore(t)
	if s.Undo() {
		t.Error("Undo on empty history should be a no-op")
	}
	if s.Redo() {
		t.Error("Redo on empty history should be a no-op")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("expected nothing to undo or redo")
	}
}

func TestUndo_RestoresPriorStateExactly(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, task.Record{"title": "A", "tags": "x"})
	mustAdd(t, s, task.Record{"title": "B"})

	var snapshots [][]task.Task
	commands := []func(){
		func() { s.ToggleTask(a.ID) },
		func() { s.UpdateTask(a.ID, task.Changes{Tags: &[]string{"y", "z"}}) },
		func() { s.ReorderTasks(a.ID, s.List()[0].ID) },
		func() { s.DeleteTask(a.ID) },
	}
	for _, cmd := range commands {
		snapshots = append(snapshots, s.List())
		cmd()
	}

	for i := len(snapshots) - 1; i >= 0; i-- {
		s.Undo()
		if got := s.List(); !reflect.DeepEqual(got, snapshots[i]) {
			t.Fatalf("undo %d: got %#v, want %#v", i, got, snapshots[i])
		}
	}
}

func TestUndoThenRedoIsIdentity(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, task.Record{"title": "A"})
	mustAdd(t, s, task.Record{"title": "B"})
	s.ToggleTask(a.ID)

	before := s.List()
	s.Undo()
	s.Redo()
	if got := s.List(); !reflect.DeepEqual(got, before) {
		t.Errorf("undo+redo changed the list:\n got %#v\nwant %#v", got, before)
	}
}

func TestNewCommandClearsFuture(t *testing.T) {
	commands := map[string]func(s *TaskStore, id string){
		"add":    func(s *TaskStore, _ string) { s.AddTask(task.Record{"title": "new"}) },
		"update": func(s *TaskStore, id string) { s.UpdateTask(id, task.Changes{Title: task.Ptr("renamed")}) },
		"toggle": func(s *TaskStore, id string) { s.ToggleTask(id) },
		"delete": func(s *TaskStore, id string) { s.DeleteTask(id) },
		"reorder": func(s *TaskStore, id string) {
			list := s.List()
			s.ReorderTasks(list[len(list)-1].ID, list[0].ID)
		},
		"import": func(s *TaskStore, _ string) { _ = s.ImportTasksFromJSONText(`[{"title":"X"}]`) },
	}

	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			a := mustAdd(t, s, task.Record{"title": "A"})
			mustAdd(t, s, task.Record{"title": "B"})
			mustAdd(t, s, task.Record{"title": "C"})
			s.Undo()
			if !s.CanRedo() {
				t.Fatal("expected a redo entry after undo")
			}

			cmd(s, a.ID)

			if st := s.State(); st.FutureLen != 0 {
				t.Errorf("expected future to be cleared, got %d entries", st.FutureLen)
			}
		})
	}
}

func TestFilterSettersDoNotTouchHistory(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, task.Record{"title": "A"})
	mustAdd(t, s, task.Record{"title": "B"})
	s.Undo()

	s.SetFilter(FilterActive)
	s.SetSearch("a")
	s.SetCategoryFilter("Work")
	s.SetPriorityFilter("high")
	s.SetTagFilter("x")

	st := s.State()
	if st.PastLen != 1 || st.FutureLen != 1 {
		t.Errorf("filter setters touched history: past=%d future=%d", st.PastLen, st.FutureLen)
	}

	s.ClearAdvancedFilters()
	st = s.State()
	if st.CategoryFilter != AllValues || st.PriorityFilter != AllValues || st.TagFilter != "" {
		t.Errorf("advanced filters not cleared: %+v", st)
	}
	if st.Filter != FilterActive || st.Search != "a" {
		t.Errorf("ClearAdvancedFilters must keep filter and search: %+v", st)
	}
}

func TestHistoryCap(t *testing.T) {
	s := newTestStore(t)
	var lists [][]task.Task
	for i := 0; i < 60; i++ {
		lists = append(lists, s.List())
		mustAdd(t, s, task.Record{"title": "task"})
	}

	if st := s.State(); st.PastLen != DefaultHistoryLimit {
		t.Fatalf("PastLen = %d, want %d", st.PastLen, DefaultHistoryLimit)
	}

	// The retained snapshots are the 50 most recent: undoing all of them
	// lands on the list as it was before the 11th add.
	for s.Undo() {
	}
	if got := s.List(); !reflect.DeepEqual(got, lists[10]) {
		t.Errorf("oldest retained snapshot has %d tasks, want %d", len(got), len(lists[10]))
	}
}

func TestWithHistoryLimit(t *testing.T) {
	s := New(WithHistoryLimit(3), WithLogger(nullLogger()))
	for i := 0; i < 5; i++ {
		s.AddTask(task.Record{"title": "x"})
	}
	if st := s.State(); st.PastLen != 3 {
		t.Errorf("PastLen = %d, want 3", st.PastLen)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, task.Record{"title": "A", "tags": "one"})

	s.UpdateTask(a.ID, task.Changes{Tags: &[]string{"two"}})
	s.ToggleTask(a.ID)

	s.Undo()
	s.Undo()
	got, _ := s.Find(a.ID)
	if !reflect.DeepEqual(got.Tags, []string{"one"}) || got.Completed {
		t.Errorf("snapshot was altered by later mutations: %#v", got)
	}
}

func TestReturnedListsAreCopies(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, task.Record{"title": "A", "tags": "one"})

	list := s.List()
	list[0].Title = "mutated"
	list[0].Tags[0] = "mutated"

	got, _ := s.Find(a.ID)
	if got.Title != "A" || got.Tags[0] != "one" {
		t.Errorf("caller mutation leaked into the store: %#v", got)
	}
}

func TestClearError(t *testing.T) {
	s := newTestStore(t)
	_ = s.ImportTasksFromJSONText("{invalid json")
	if s.Error() == "" {
		t.Fatal("expected an error to be recorded")
	}
	s.ClearError()
	if s.Error() != "" {
		t.Errorf("Error() = %q after ClearError", s.Error())
	}
}
