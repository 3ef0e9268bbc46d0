// Package exchange converts task lists to and from the JSON text used for
// export files and imports.
package exchange

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pablasso/tasktracker/internal/task"
)

var (
	// ErrParse means the import text is not valid JSON.
	ErrParse = errors.New("Invalid JSON file.")
	// ErrShape means the import text is valid JSON but not an array.
	ErrShape = errors.New("Import file must be an array of tasks.")
)

// Export renders the list as a pretty-printed JSON array with 2-space indent.
func Export(list []task.Task) (string, error) {
	if list == nil {
		list = []task.Task{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Parse decodes text into its raw array elements.
func Parse(text string) ([]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, ErrParse
	}
	arr, ok := parsed.([]any)
	if !ok {
		return nil, ErrShape
	}
	return arr, nil
}

// Normalize turns raw elements into tasks, dropping entries whose title is
// empty. Non-object elements normalize like an empty record and are dropped.
// Later duplicates of an id are given a fresh one.
func Normalize(raw []any, now time.Time, newID func() string) []task.Task {
	out := make([]task.Task, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, el := range raw {
		rec, _ := el.(map[string]any)
		t := task.Normalize(task.Record(rec), now, newID)
		if t.Title == "" {
			continue
		}
		if seen[t.ID] {
			t.ID = newID()
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// Import parses and normalizes import text.
func Import(text string, now time.Time, newID func() string) ([]task.Task, error) {
	raw, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, now, newID), nil
}
