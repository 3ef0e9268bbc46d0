package task

import (
	"strings"
	"time"
)

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Title     *string
	Completed *bool
	Priority  *string
	Category  *string
	// Tags holds raw tag entries; they are trimmed, filtered and capped on apply.
	Tags *[]string
}

// IsEmpty reports whether no field is set.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Completed == nil && c.Priority == nil &&
		c.Category == nil && c.Tags == nil
}

// ChangesFromRecord builds Changes from the keys present in rec. A key holding
// null counts as omitted.
func ChangesFromRecord(rec Record) Changes {
	var c Changes
	if v, ok := rec["title"]; ok && v != nil {
		s := jsString(v)
		c.Title = &s
	}
	if v, ok := rec["completed"]; ok && v != nil {
		b := truthy(v)
		c.Completed = &b
	}
	if v, ok := rec["priority"]; ok && v != nil {
		s := string(NormalizePriority(v))
		c.Priority = &s
	}
	if v, ok := rec["category"]; ok && v != nil {
		s := jsString(v)
		c.Category = &s
	}
	if v, ok := rec["tags"]; ok && v != nil {
		tags := NormalizeTags(v)
		c.Tags = &tags
	}
	return c
}

// Apply returns a copy of t with the changes applied and UpdatedAt refreshed
// to now, whatever the changes contain.
func (t Task) Apply(c Changes, now time.Time) Task {
	out := t.Clone()
	if c.Title != nil {
		out.Title = strings.TrimSpace(*c.Title)
	}
	if c.Completed != nil {
		out.Completed = *c.Completed
	}
	if c.Priority != nil {
		out.Priority = NormalizePriority(*c.Priority)
	}
	if c.Category != nil {
		out.Category = strings.TrimSpace(*c.Category)
	}
	if c.Tags != nil {
		out.Tags = capTags(*c.Tags)
	}
	out.UpdatedAt = FormatTime(now)
	return out
}

// Ptr returns a pointer to v. It keeps Changes literals short.
func Ptr[T any](v T) *T {
	return &v
}
