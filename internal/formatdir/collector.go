// Package formatdir collects files under a target path and formats them in
// bounded-concurrency batches with undo support.
package formatdir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/core/format"
	"github.com/hay-kot/fmtdir/internal/core/glob"
	"github.com/rs/zerolog"
)

// FileHandle references a file selected for formatting.
type FileHandle struct {
	Path string // absolute, cleaned
}

// Name returns the file's base name.
func (f FileHandle) Name() string {
	return filepath.Base(f.Path)
}

// Collector selects files under a target path.
type Collector struct {
	root string
	log  zerolog.Logger
}

// NewCollector creates a collector. Exclude patterns are matched against
// paths relative to workspaceRoot.
func NewCollector(workspaceRoot string, log zerolog.Logger) *Collector {
	return &Collector{root: filepath.Clean(workspaceRoot), log: log}
}

// Relative returns path relative to the workspace root with forward slashes.
// Paths outside the workspace are returned relative to fallback.
func (c *Collector) Relative(path, fallback string) string {
	if rel, ok := relativeTo(c.root, path); ok {
		return rel
	}
	if rel, ok := relativeTo(fallback, path); ok {
		return rel
	}
	return filepath.ToSlash(path)
}

func relativeTo(base, path string) (string, bool) {
	if base == "" {
		return "", false
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

type walkState struct {
	collector *Collector
	target    string
	cfg       config.FormatConfig
	excludes  *glob.Matcher
	files     []FileHandle
}

// Collect returns the files to format for target. A file target yields
// itself. A directory target is walked depth-first in listing order, skipping
// excluded entries, files without a selected extension, and files larger than
// the configured limit. Exclude patterns are matched against "/" followed by
// the entry's workspace-relative path, so "/src/gen" is tested for src/gen.
// An excluded directory is never read.
func (c *Collector) Collect(ctx context.Context, target string, cfg config.FormatConfig) ([]FileHandle, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", target, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}

	if !info.IsDir() {
		c.log.Info().Msgf("Formatting single file: %s", abs)
		return []FileHandle{{Path: abs}}, nil
	}

	c.log.Info().Msgf("Formatting directory: %s", abs)

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", abs, err)
	}

	ws := &walkState{
		collector: c,
		target:    abs,
		cfg:       cfg,
		excludes:  glob.Compile(cfg.ExcludePatterns),
	}
	if err := ws.walk(ctx, abs, entries, 0); err != nil {
		return nil, err
	}

	return ws.files, nil
}

func (ws *walkState) walk(ctx context.Context, dir string, entries []fs.DirEntry, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ws.collector.log.Debug().Int("depth", depth).Msgf("Scanning %s", dir)

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel := ws.collector.Relative(path, ws.target)

		// A leading slash lets "**/name/**" patterns match top-level entries.
		if p, ok := ws.excludes.Match("/" + rel); ok {
			ws.collector.log.Debug().Msgf("Excluded %s by %s", rel, p)
			continue
		}

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			continue
		case entry.Type().IsRegular():
			if ws.include(path, entry.Name()) {
				ws.files = append(ws.files, FileHandle{Path: path})
			}
		case entry.IsDir() && ws.cfg.Recursive:
			children, err := os.ReadDir(path)
			if err != nil {
				ws.collector.log.Error().Err(err).Msgf("Failed to read directory %s", path)
				continue
			}
			if err := ws.walk(ctx, path, children, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

func (ws *walkState) include(path, name string) bool {
	if !ws.cfg.HasExtension(format.Extension(name)) {
		return false
	}

	if ws.cfg.MaxFileSize <= 0 {
		return true
	}

	info, err := os.Stat(path)
	if err != nil {
		ws.collector.log.Error().Err(err).Msgf("Failed to get file size for %s", name)
		return false
	}

	if info.Size() > ws.cfg.MaxFileSize {
		ws.collector.log.Debug().Msgf("Skipping %s: file size %d exceeds limit %d", name, info.Size(), ws.cfg.MaxFileSize)
		return false
	}

	return true
}
