// Package fileutil provides output-file utilities with tmp+mv semantics.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tmpSuffix marks in-progress output files.
const tmpSuffix = ".tmp"

// AtomicFile is an output file written under a temporary name and renamed
// into place on Commit. A run killed mid-write leaves only the temporary
// file behind, never a half-written table at the final path.
type AtomicFile struct {
	f    *os.File
	path string
	done bool
}

// Create opens an atomic file that will land at path on Commit. The
// temporary file lives in the same directory so the final rename stays on
// one filesystem.
func Create(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	f, err := os.CreateTemp(dir, base+".*"+tmpSuffix)
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	return &AtomicFile{f: f, path: path}, nil
}

// Write writes to the temporary file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Commit syncs, closes and renames the temporary file into place.
func (a *AtomicFile) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	if err := a.f.Sync(); err != nil {
		a.f.Close()
		os.Remove(a.f.Name())
		return fmt.Errorf("sync output: %w", err)
	}
	if err := a.f.Close(); err != nil {
		os.Remove(a.f.Name())
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(a.f.Name(), a.path); err != nil {
		os.Remove(a.f.Name())
		return fmt.Errorf("rename output into place: %w", err)
	}
	return nil
}

// Abort closes and removes the temporary file. Safe after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	a.f.Close()
	os.Remove(a.f.Name())
}

// CleanupTmpFiles removes abandoned temporary output files in dir.
func CleanupTmpFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}
