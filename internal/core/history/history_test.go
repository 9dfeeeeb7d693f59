package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/internal/output"
	"github.com/hay-kot/fmtdir/internal/store/jsonfile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) (*Log, string) {
	t.Helper()

	dir := t.TempDir()
	store := jsonfile.NewKVStore(filepath.Join(dir, "data", "state.json"))
	return New(store, document.NewFileWorkspace(), zerolog.Nop()), dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLog_AddEvictsOldest(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	file := filepath.Join(dir, "a.ts")
	writeFile(t, file, "const a=1")

	ids := make([]string, 0, MaxItems+1)
	for i := 0; i < MaxItems+1; i++ {
		id, err := l.Add(ctx, []string{file})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}

	items, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, MaxItems)

	got := make([]string, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		got = append(got, items[i].ID)
	}
	assert.Equal(t, ids[1:], got)
}

func TestLog_AddSkipsUnreadableFiles(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	readable := filepath.Join(dir, "a.ts")
	writeFile(t, readable, "a")

	id, err := l.Add(ctx, []string{filepath.Join(dir, "missing.ts"), readable})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	items, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []FileChange{{Path: readable, OriginalContent: "a"}}, items[0].Files)
}

func TestLog_RecordsArePlainMessages(t *testing.T) {
	dir := t.TempDir()
	ch := output.NewChannel(nil)
	store := jsonfile.NewKVStore(filepath.Join(dir, "data", "state.json"))
	l := New(store, document.NewFileWorkspace(), output.NewLogger(ch, zerolog.DebugLevel))
	ctx := context.Background()

	a := filepath.Join(dir, "a.ts")
	b := filepath.Join(dir, "b.ts")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	_, err := l.Add(ctx, []string{a, b, filepath.Join(dir, "missing.ts")})
	require.NoError(t, err)
	require.NoError(t, os.Remove(b))

	_, err = l.Undo(ctx)
	require.NoError(t, err)

	lines := ch.Lines()
	require.NotEmpty(t, lines)
	for _, line := range lines {
		for _, field := range []string{"component=", "path=", "error=", "id=", "files="} {
			assert.NotContains(t, line, field)
		}
	}

	all := strings.Join(lines, "\n")
	assert.Contains(t, all, "Failed to read "+filepath.Join(dir, "missing.ts")+" for history")
	assert.Contains(t, all, "Failed to restore "+b)
	assert.Contains(t, all, "Undo restored 1 of 2 files")
}

func TestLog_AddEmptySnapshot(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	id, err := l.Add(ctx, []string{filepath.Join(dir, "missing.ts")})
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = l.Add(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, id)

	items, err := l.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLog_UndoRestoresLatestBatch(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	a := filepath.Join(dir, "a.ts")
	b := filepath.Join(dir, "b.ts")
	writeFile(t, a, "a-v1\r\n\tindent")
	writeFile(t, b, "b-v1")

	_, err := l.Add(ctx, []string{a, b})
	require.NoError(t, err)
	writeFile(t, a, "a-v2")
	writeFile(t, b, "b-v2")

	_, err = l.Add(ctx, []string{a})
	require.NoError(t, err)
	writeFile(t, a, "a-v3")

	res, err := l.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "a-v2", readFile(t, a))
	assert.Equal(t, "b-v2", readFile(t, b))

	res, err = l.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Restored)
	assert.Equal(t, "a-v1\r\n\tindent", readFile(t, a))
	assert.Equal(t, "b-v1", readFile(t, b))

	_, err = l.Undo(ctx)
	require.ErrorIs(t, err, ErrNoHistory)
}

func TestLog_UndoCommitsPartialRestore(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	a := filepath.Join(dir, "a.ts")
	b := filepath.Join(dir, "b.ts")
	writeFile(t, a, "a-v1")
	writeFile(t, b, "b-v1")

	_, err := l.Add(ctx, []string{a, b})
	require.NoError(t, err)

	writeFile(t, a, "a-v2")
	require.NoError(t, os.Remove(b))

	res, err := l.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "a-v1", readFile(t, a))

	items, err := l.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLog_ListNewestFirst(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		file := filepath.Join(dir, fmt.Sprintf("f%d.ts", i))
		writeFile(t, file, "x")
		_, err := l.Add(ctx, []string{file})
		require.NoError(t, err)
	}

	items, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, filepath.Join(dir, "f2.ts"), items[0].Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "f0.ts"), items[2].Files[0].Path)
}

func TestLog_Clear(t *testing.T) {
	l, dir := newTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Clear(ctx))

	file := filepath.Join(dir, "a.ts")
	writeFile(t, file, "x")
	_, err := l.Add(ctx, []string{file})
	require.NoError(t, err)

	require.NoError(t, l.Clear(ctx))

	_, err = l.Undo(ctx)
	require.ErrorIs(t, err, ErrNoHistory)
}
