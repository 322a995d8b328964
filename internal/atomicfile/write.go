// Package atomicfile writes generated artifacts without ever leaving a
// half-written file behind: data goes to a temporary file in the destination
// directory, is flushed, and is then renamed over the target.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Target is one destination of a multi-file write.
type Target struct {
	Path string
	Data []byte
	Perm os.FileMode
}

// PathError reports which destination of [WriteAll] failed.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Write atomically replaces path with data. The parent directory must exist.
// On any failure the temporary file is removed and path is left untouched.
func Write(path string, data []byte, perm os.FileMode) error {
	tmpName, err := writeTemp(path, data)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}

// writeTemp writes data to a synced temp file next to path and returns its name.
func writeTemp(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()

	_, werr := f.Write(data)
	if werr == nil {
		werr = f.Sync()
	}
	cerr := f.Close()
	switch {
	case werr != nil:
		os.Remove(name)
		return "", fmt.Errorf("write temp file: %w", werr)
	case cerr != nil:
		os.Remove(name)
		return "", fmt.Errorf("close temp file: %w", cerr)
	}
	return name, nil
}

// WriteAll writes targets in order and stops at the first failure, returning
// a [*PathError] naming it. Targets before the failing one stay written;
// targets after it are not attempted. When written is non-nil it is called
// after each successful write.
func WriteAll(targets []Target, written func(Target)) error {
	for _, t := range targets {
		if err := Write(t.Path, t.Data, t.Perm); err != nil {
			return &PathError{Path: t.Path, Err: err}
		}
		if written != nil {
			written(t)
		}
	}
	return nil
}
