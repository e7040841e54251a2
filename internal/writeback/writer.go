// Package writeback persists rendered files. Writes are whole-file
// overwrites through a billy filesystem, so production code targets the
// real disk while tests run against memfs.
package writeback

import (
	"fmt"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
)

// FormatFunc optionally rewrites content before it hits disk, keyed by the
// target path. It must fall back to the input on any failure: formatting
// is a convenience, never validation.
type FormatFunc func(content []byte, path string) []byte

// Writer persists rendered file contents under a filesystem root.
type Writer struct {
	fs     billy.Filesystem
	format FormatFunc
}

// NewWriter returns a writer over fs with no format hook.
func NewWriter(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs}
}

// SetFormat installs a pre-write format hook.
func (w *Writer) SetFormat(fn FormatFunc) {
	w.format = fn
}

// Write replaces the file at path with content. The write is atomic:
// content goes to a temp file in the same directory first, then renames
// over the target, so a crash mid-write never leaves a half-rendered file.
func (w *Writer) Write(path string, content []byte) error {
	if w.format != nil {
		content = w.format(content, path)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	tmp, err := w.fs.TempFile(dir, ".codebook-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	if err := w.fs.Rename(tmpName, path); err != nil {
		_ = w.fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}

	return nil
}
