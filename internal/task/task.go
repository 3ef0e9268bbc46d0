// Package task defines the task model and the rules that turn loosely typed
// input into valid tasks.
package task

import "time"

// Priority ranks a task. Anything that is not low or high normalizes to medium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// MaxTags is the number of tags a task keeps; extra tags are dropped.
const MaxTags = 10

// TimeLayout matches the millisecond ISO-8601 form used for persisted timestamps.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Task is a single to-do entry.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// Record is an untyped, task-like object such as a decoded JSON element.
type Record map[string]any

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Tags = make([]string, len(t.Tags))
	copy(c.Tags, t.Tags)
	return c
}

// HasTag reports whether the task carries exactly the given tag.
func (t Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// CloneList deep-copies a task list. A nil list yields an empty, non-nil list.
func CloneList(list []Task) []Task {
	out := make([]Task, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
