// Package lockfile provides a single-instance guard backed by an advisory
// lock on a file. The lock is released when the holder exits, even on a
// crash, so a stale file never blocks the next run.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrLocked is returned by [Acquire] when another process holds the lock.
var ErrLocked = errors.New("lock held by another process")

// Lock is a held lock. Release it when done.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive non-blocking lock on path, creating the file if
// needed, and records the current PID in it.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
		return nil, err
	}

	if err := writePID(f); err != nil {
		_ = unlockFile(f)
		f.Close()
		return nil, err
	}
	return &Lock{f: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.f.Name()
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	name := l.f.Name()
	// Remove before unlocking so a waiting process never locks a file that
	// is about to disappear.
	os.Remove(name)
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	return errors.Join(unlockErr, closeErr)
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0); err != nil {
		return fmt.Errorf("write lock file: %w", err)
	}
	return nil
}
