package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const sessionLockName = "session.lock"

// ErrLocked means another live process holds the session lock.
var ErrLocked = errors.New("another tasktracker session is running")

// SessionLock is a PID file that keeps two interactive sessions from
// editing the same data directory. A lock left behind by a dead process is
// treated as free.
type SessionLock struct {
	path string
}

func NewSessionLock(dir string) *SessionLock {
	return &SessionLock{path: filepath.Join(dir, sessionLockName)}
}

// Acquire takes the lock or returns an error wrapping ErrLocked.
func (l *SessionLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	// Second attempt only runs after a stale lock was cleared.
	for attempt := 0; attempt < 2; attempt++ {
		created, err := l.create()
		if err != nil {
			return err
		}
		if created {
			return nil
		}

		pid, ok := l.owner()
		if ok && processExists(pid) {
			return fmt.Errorf("%w (PID %d)", ErrLocked, pid)
		}
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale lock file: %w", err)
		}
	}
	return fmt.Errorf("%w: lock taken during retry", ErrLocked)
}

// Release removes the lock file. Releasing an unheld lock is not an error.
func (l *SessionLock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

// create reports false when the file already exists.
func (l *SessionLock) create() (bool, error) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("create lock file: %w", err)
	}
	_, err = fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if err != nil {
		os.Remove(l.path)
		return false, fmt.Errorf("write lock file: %w", err)
	}
	return true, nil
}

func (l *SessionLock) owner() (int, bool) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

// processExists probes pid with signal 0.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
