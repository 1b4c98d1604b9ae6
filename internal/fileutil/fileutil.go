package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile buffers writes in a temporary file next to the destination.
// Commit renames it into place; Abort discards it.
type AtomicFile struct {
	*os.File
	target string
	mode   os.FileMode
	done   bool
}

// CreateAtomic opens a temporary file in the directory of target, creating
// the directory when needed.
func CreateAtomic(target string, mode os.FileMode) (*AtomicFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &AtomicFile{File: tmp, target: target, mode: mode}, nil
}

// Target returns the final path.
func (f *AtomicFile) Target() string {
	return f.target
}

// Commit flushes the temporary file and renames it over the target.
func (f *AtomicFile) Commit() error {
	if f.done {
		return nil
	}
	f.done = true
	if err := f.Sync(); err != nil {
		f.cleanup()
		return fmt.Errorf("sync %s: %w", f.Name(), err)
	}
	if err := f.File.Close(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("close %s: %w", f.Name(), err)
	}
	if err := os.Chmod(f.Name(), f.mode); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), f.target); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("rename to %s: %w", f.target, err)
	}
	return nil
}

// Abort removes the temporary file. It is a no-op after Commit.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.cleanup()
}

func (f *AtomicFile) cleanup() {
	_ = f.File.Close()
	_ = os.Remove(f.Name())
}

// WriteFileAtomic writes data to path through an AtomicFile.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	f, err := CreateAtomic(path, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Commit()
}
