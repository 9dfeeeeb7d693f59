package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileWorkspace is a Workspace backed by the local filesystem.
type FileWorkspace struct{}

// NewFileWorkspace creates a filesystem workspace.
func NewFileWorkspace() *FileWorkspace {
	return &FileWorkspace{}
}

// Open reads path into a new Document.
func (w *FileWorkspace) Open(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Document{Path: path, Text: string(data), Mode: info.Mode().Perm()}, nil
}

// Apply applies edits to the in-memory document.
func (w *FileWorkspace) Apply(_ context.Context, doc *Document, edits []Edit) error {
	text, err := ApplyEdits(doc.Text, edits)
	if err != nil {
		return fmt.Errorf("apply edits to %s: %w", doc.Path, err)
	}
	if text != doc.Text {
		doc.Text = text
		doc.dirty = true
	}
	return nil
}

// Save writes the document back to disk atomically, preserving its mode.
func (w *FileWorkspace) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := doc.Mode
	if mode == 0 {
		mode = 0o644
	}

	if err := writeAtomic(doc.Path, []byte(doc.Text), mode); err != nil {
		return fmt.Errorf("save %s: %w", doc.Path, err)
	}

	doc.dirty = false
	return nil
}

// writeAtomic writes data to a temp file in the target directory and renames it into place.
func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
