package renderlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld indicates another process already holds the lock for the same
// destination.
var ErrHeld = errors.New("destination is locked by another render")

// Lock is a per-destination render lock backed by flock.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes an exclusive lock for the given destination path. The lock
// file lives next to the destination with a ".lock" suffix.
func Acquire(destination string) (*Lock, error) {
	if destination == "" {
		return nil, errors.New("destination is required")
	}

	lockPath := destination + ".lock"
	if dir := filepath.Dir(lockPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
	}

	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHeld, destination)
	}
	return &Lock{path: lockPath, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	_ = os.Remove(l.path)
	l.lock = nil
	return nil
}
