package task

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Normalize coerces a record into a task. Missing ids get newID(), missing
// timestamps get now. The returned task may have an empty title; callers
// decide whether that means "skip" or "delete".
func Normalize(rec Record, now time.Time, newID func() string) Task {
	stamp := FormatTime(now)

	id := ""
	if truthy(rec["id"]) {
		id = jsString(rec["id"])
	} else {
		id = newID()
	}

	return Task{
		ID:        id,
		Title:     strings.TrimSpace(stringOrEmpty(rec["title"])),
		Completed: truthy(rec["completed"]),
		Priority:  NormalizePriority(rec["priority"]),
		Category:  strings.TrimSpace(stringOrEmpty(rec["category"])),
		Tags:      NormalizeTags(rec["tags"]),
		CreatedAt: stringOrDefault(rec["createdAt"], stamp),
		UpdatedAt: stringOrDefault(rec["updatedAt"], stamp),
	}
}

// NormalizePriority returns low or high when v names one of them
// (case-insensitive), otherwise medium.
func NormalizePriority(v any) Priority {
	s := ""
	if truthy(v) {
		s = jsString(v)
	}
	switch Priority(strings.ToLower(s)) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	}
	return PriorityMedium
}

// NormalizeTags accepts a sequence or a comma-separated string. Elements are
// trimmed, empty ones dropped, and at most MaxTags kept. Any other input
// yields an empty list.
func NormalizeTags(v any) []string {
	switch tv := v.(type) {
	case []string:
		return capTags(tv)
	case []any:
		parts := make([]string, len(tv))
		for i, e := range tv {
			parts[i] = jsString(e)
		}
		return capTags(parts)
	case string:
		return ParseTags(tv)
	}
	return []string{}
}

// ParseTags splits a comma-separated tag string.
func ParseTags(s string) []string {
	return capTags(strings.Split(s, ","))
}

func capTags(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// truthy follows JSON/JavaScript truthiness for decoded values.
func truthy(v any) bool {
	switch tv := v.(type) {
	case nil:
		return false
	case bool:
		return tv
	case string:
		return tv != ""
	case float64:
		return tv != 0 && !math.IsNaN(tv)
	case int:
		return tv != 0
	case int64:
		return tv != 0
	case json.Number:
		f, err := tv.Float64()
		return err != nil || f != 0
	}
	return true
}

func stringOrEmpty(v any) string {
	if v == nil {
		return ""
	}
	return jsString(v)
}

func stringOrDefault(v any, def string) string {
	if !truthy(v) {
		return def
	}
	return jsString(v)
}

// jsString converts a decoded JSON value to text the way a browser would
// stringify it: arrays join with commas and objects collapse to a marker.
func jsString(v any) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case string:
		return tv
	case bool:
		return strconv.FormatBool(tv)
	case float64:
		return formatNumber(tv)
	case json.Number:
		return tv.String()
	case int, int64, int32:
		return fmt.Sprint(tv)
	case []string:
		return strings.Join(tv, ",")
	case []any:
		parts := make([]string, len(tv))
		for i, e := range tv {
			if e == nil {
				continue
			}
			parts[i] = jsString(e)
		}
		return strings.Join(parts, ",")
	case map[string]any, Record:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
