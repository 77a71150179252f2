// Package filelock serialises runs that write the same output file.
//
// The lock is advisory and lives next to the output as "<output>.lock"; the
// output itself is written in place so a failed run leaves its partial
// result behind.
//
// The lock file is left in place after a run. Removing it would let a run
// that is waiting on the old file lock an unlinked inode while a third run
// creates and locks a fresh one.
package filelock

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by TryLockOutput when another process holds the lock.
var ErrLocked = errors.New("output is locked by another run")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// LockPath returns the lock file path guarding output.
func LockPath(output string) string {
	return output + ".lock"
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock attempts to acquire an exclusive lock without blocking.
// Returns true if the lock was acquired, false if it is held elsewhere.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Locked reports whether this handle currently holds the lock.
func (fl *FileLock) Locked() bool {
	return fl.flock.Locked()
}

// TryLockOutput takes the lock guarding output without blocking. It returns
// ErrLocked if another run already holds it.
func TryLockOutput(output string) (*FileLock, error) {
	lock := NewFileLock(LockPath(output))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s (held on %s)", ErrLocked, output, lock.Path())
	}
	return lock, nil
}

// WithOutputLock runs fn while holding the lock guarding output. When wait
// is false and the lock is held elsewhere, fn is not run and ErrLocked is
// returned.
func WithOutputLock(output string, wait bool, fn func() error) error {
	var lock *FileLock
	if wait {
		lock = NewFileLock(LockPath(output))
		if err := lock.Lock(); err != nil {
			return err
		}
	} else {
		var err error
		lock, err = TryLockOutput(output)
		if err != nil {
			return err
		}
	}
	defer func() {
		if lock.Locked() {
			_ = lock.Unlock()
		}
	}()

	return fn()
}
