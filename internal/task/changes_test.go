package task

import (
	"reflect"
	"testing"
	"time"
)

func TestApply_PartialUpdate(t *testing.T) {
	orig := Task{
		ID:        "t1",
		Title:     "Old",
		Priority:  PriorityLow,
		Category:  "Home",
		Tags:      []string{"a"},
		CreatedAt: "2020-01-01T00:00:00.000Z",
		UpdatedAt: "2020-01-01T00:00:00.000Z",
	}
	later := fixedNow.Add(time.Hour)

	got := orig.Apply(Changes{Category: Ptr("  Work ")}, later)

	if got.Title != "Old" || got.Priority != PriorityLow {
		t.Errorf("omitted fields changed: %#v", got)
	}
	if got.Category != "Work" {
		t.Errorf("Category = %q, want Work", got.Category)
	}
	if got.UpdatedAt != FormatTime(later) {
		t.Errorf("UpdatedAt = %q, want %q", got.UpdatedAt, FormatTime(later))
	}
	if got.CreatedAt != orig.CreatedAt {
		t.Errorf("CreatedAt changed to %q", got.CreatedAt)
	}
}

func TestApply_NormalizesFields(t *testing.T) {
	orig := Task{ID: "t1", Title: "x", Priority: PriorityHigh, Tags: []string{}}
	tags := []string{" a ", "", "b"}

	got := orig.Apply(Changes{
		Title:     Ptr("  new  "),
		Priority:  Ptr("bogus"),
		Tags:      &tags,
		Completed: Ptr(true),
	}, fixedNow)

	if got.Title != "new" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want medium", got.Priority)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v", got.Tags)
	}
	if !got.Completed {
		t.Error("expected Completed")
	}
}

func TestApply_DoesNotAliasOriginal(t *testing.T) {
	orig := Task{ID: "t1", Title: "x", Tags: []string{"a"}}
	got := orig.Apply(Changes{}, fixedNow)
	got.Tags[0] = "mutated"
	if orig.Tags[0] != "a" {
		t.Error("Apply shares the tag slice with the original")
	}
}

func TestChangesFromRecord(t *testing.T) {
	c := ChangesFromRecord(Record{
		"title":    "T",
		"priority": "LOW",
		"tags":     "x,y",
		"category": nil,
	})

	if c.Title == nil || *c.Title != "T" {
		t.Errorf("Title = %v", c.Title)
	}
	if c.Priority == nil || *c.Priority != "low" {
		t.Errorf("Priority = %v", c.Priority)
	}
	if c.Tags == nil || !reflect.DeepEqual(*c.Tags, []string{"x", "y"}) {
		t.Errorf("Tags = %v", c.Tags)
	}
	if c.Category != nil {
		t.Error("null category should count as omitted")
	}
	if c.Completed != nil {
		t.Error("absent completed should stay nil")
	}
}

func TestChanges_IsEmpty(t *testing.T) {
	if !(Changes{}).IsEmpty() {
		t.Error("zero Changes should be empty")
	}
	if (Changes{Completed: Ptr(false)}).IsEmpty() {
		t.Error("Changes with Completed set should not be empty")
	}
}
