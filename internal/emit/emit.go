// Package emit writes a code generator's output map to disk: each file
// buffered in memory, written atomically, and stale files from a previous
// compile of the same project removed first (spec.md §5 "Generated C
// source is buffered per-file then written atomically").
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Writer writes a codegen.GenerateAll result into a single output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting dir, creating it if necessary.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("emit: creating output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll removes any `*.c`/`*.h` left over from an earlier compile of this
// project, then writes every entry in files atomically. files maps a
// filename (e.g. "Main.c", "CMakeLists.txt") to its full contents.
//
// Cleanup runs before any write so a class renamed or removed between
// compiles doesn't leave an orphaned source file for the build manifest's
// glob to pick up.
func (w *Writer) WriteAll(files map[string]string) error {
	if err := w.removeStaleSources(); err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.writeAtomic(name, files[name]); err != nil {
			return err
		}
	}
	return nil
}

// removeStaleSources globs the output directory for `*.c`/`*.h` the way the
// generated CMakeLists.txt itself does, and deletes what it finds.
func (w *Writer) removeStaleSources() error {
	for _, pattern := range []string{"*.c", "*.h"} {
		matches, err := doublestar.FilepathGlob(filepath.Join(w.dir, pattern))
		if err != nil {
			return fmt.Errorf("emit: globbing %s in %s: %w", pattern, w.dir, err)
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil {
				return fmt.Errorf("emit: removing stale file %s: %w", match, err)
			}
		}
	}
	return nil
}

// writeAtomic writes content to a temp file in the output directory, then
// renames it into place, so a reader never observes a partially written
// file even if the process is killed mid-write.
func (w *Writer) writeAtomic(name, content string) error {
	target := filepath.Join(w.dir, name)

	tmp, err := os.CreateTemp(w.dir, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("emit: creating temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("emit: writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("emit: closing %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("emit: renaming %s into place: %w", name, err)
	}
	return nil
}
