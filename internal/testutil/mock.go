// Package testutil provides testing utilities for the tasktracker project.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// Clock is a manual time source. Each call to Now advances it by Step.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewClock returns a clock starting at a fixed instant that advances one
// second per reading.
func NewClock() *Clock {
	return &Clock{
		now:  time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		Step: time.Second,
	}
}

// Now returns the current reading and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.Step)
	return t
}

// SequentialIDs returns a generator producing id-1, id-2, ...
func SequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// SetupDataDir creates a temp data directory and resolves symlinks (for
// macOS, /var -> /private/var). Returns the resolved path.
func SetupDataDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}
	return tmpDir
}
