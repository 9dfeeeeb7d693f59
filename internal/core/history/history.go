// Package history records file snapshots taken before each batch so the most
// recent batch can be undone.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/internal/core/state"
	"github.com/rs/zerolog"
)

const (
	// StorageKey is the state key the history list is persisted under.
	StorageKey = "formatdir.history"
	// MaxItems is the number of batches retained.
	MaxItems = 20
)

// ErrNoHistory is returned by Undo when there is nothing to undo.
var ErrNoHistory = errors.New("no history to undo")

// FileChange is the original content of a file captured before formatting.
type FileChange struct {
	Path            string `json:"path"`
	OriginalContent string `json:"original_content"`
}

// Item is one batch worth of snapshots.
type Item struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Files     []FileChange `json:"files"`
}

// UndoResult reports how many files of the popped batch were restored.
type UndoResult struct {
	ID       string
	Restored int
	Total    int
}

// Log persists history items in a state store.
type Log struct {
	store     state.Store
	workspace document.Workspace
	max       int
	log       zerolog.Logger
	now       func() time.Time
	newID     func() (uuid.UUID, error)
}

// New creates a history log backed by store. Files are read and restored
// through workspace.
func New(store state.Store, workspace document.Workspace, log zerolog.Logger) *Log {
	return &Log{
		store:     store,
		workspace: workspace,
		max:       MaxItems,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewV7,
	}
}

// Add snapshots the current content of paths and appends the snapshot as a
// new item. Files that cannot be read are logged and left out. When no file
// could be read, Add returns an empty id and records nothing.
func (l *Log) Add(ctx context.Context, paths []string) (string, error) {
	changes := make([]FileChange, 0, len(paths))
	for _, p := range paths {
		doc, err := l.workspace.Open(ctx, p)
		if err != nil {
			l.log.Error().Msgf("Failed to read %s for history: %v", p, err)
			continue
		}
		changes = append(changes, FileChange{Path: p, OriginalContent: doc.Text})
	}

	if len(changes) == 0 {
		return "", nil
	}

	id, err := l.newID()
	if err != nil {
		return "", fmt.Errorf("generate history id: %w", err)
	}

	items, err := l.load(ctx)
	if err != nil {
		return "", err
	}

	items = append(items, Item{
		ID:        id.String(),
		Timestamp: l.now(),
		Files:     changes,
	})

	if len(items) > l.max {
		items = items[len(items)-l.max:]
	}

	if err := l.save(ctx, items); err != nil {
		return "", err
	}

	l.log.Debug().Msgf("Recorded history item %s with %d files", id, len(changes))
	return id.String(), nil
}

// Undo pops the most recent item and restores each of its files. Restore
// failures are logged and skipped. The popped list is persisted whether or
// not every file was restored.
func (l *Log) Undo(ctx context.Context) (UndoResult, error) {
	items, err := l.load(ctx)
	if err != nil {
		return UndoResult{}, err
	}

	if len(items) == 0 {
		return UndoResult{}, ErrNoHistory
	}

	last := items[len(items)-1]
	items = items[:len(items)-1]

	res := UndoResult{ID: last.ID, Total: len(last.Files)}
	for _, change := range last.Files {
		if err := l.restore(ctx, change); err != nil {
			l.log.Error().Msgf("Failed to restore %s: %v", change.Path, err)
			continue
		}
		res.Restored++
	}

	if err := l.save(ctx, items); err != nil {
		return res, fmt.Errorf("persist history: %w", err)
	}

	l.log.Info().Msgf("Undo restored %d of %d files from %s", res.Restored, res.Total, last.ID)

	return res, nil
}

func (l *Log) restore(ctx context.Context, change FileChange) error {
	doc, err := l.workspace.Open(ctx, change.Path)
	if err != nil {
		return err
	}

	edit := document.Replace(doc.FullRange(), change.OriginalContent)
	if err := l.workspace.Apply(ctx, doc, []document.Edit{edit}); err != nil {
		return err
	}

	if !doc.Dirty() {
		return nil
	}

	return l.workspace.Save(ctx, doc)
}

// List returns the recorded items, newest first.
func (l *Log) List(ctx context.Context) ([]Item, error) {
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Item, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out, nil
}

// Clear removes every recorded item.
func (l *Log) Clear(ctx context.Context) error {
	err := l.store.Delete(ctx, StorageKey)
	if errors.Is(err, state.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (l *Log) load(ctx context.Context) ([]Item, error) {
	entry, err := l.store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, state.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}

	if entry.Value == "" {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(entry.Value), &items); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return items, nil
}

func (l *Log) save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	return l.store.Set(ctx, StorageKey, string(data))
}
