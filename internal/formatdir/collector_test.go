package formatdir

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func testFormatConfig() config.FormatConfig {
	cfg := config.DefaultConfig()
	return cfg.FormatConfig()
}

func names(t *testing.T, root string, files []FileHandle) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestCollector_SizeAndExcludeScenario(t *testing.T) {
	ws := t.TempDir()
	project := filepath.Join(ws, "project")
	writeTree(t, project, map[string]string{
		"a.ts":     "const a  =  1",
		"b.min.js": "var b=1",
		"c.ts":     strings.Repeat("x", 600000),
	})

	cfg := testFormatConfig()
	cfg.MaxFileSize = 500000

	files, err := NewCollector(ws, zerolog.Nop()).Collect(context.Background(), project, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts"}, names(t, project, files))
}

func TestCollector_Walk(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{
		"a.ts":                          "",
		"sub/b.ts":                      "",
		"sub/deeper/c.go":               "",
		"sub/node_modules/pkg/index.js": "",
		"node_modules/pkg/index.js":     "",
		"dist/app.js":                   "",
		"z.ts":                          "",
		"README":                        "",
		"notes.txt":                     "",
		"UPPER.TS":                      "",
		".eslintrc":                     "",
	})

	tests := []struct {
		name string
		mod  func(cfg *config.FormatConfig)
		want []string
	}{
		{
			name: "recursive depth-first pre-order",
			want: []string{"a.ts", "sub/b.ts", "sub/deeper/c.go", "z.ts"},
		},
		{
			name: "non-recursive",
			mod:  func(cfg *config.FormatConfig) { cfg.Recursive = false },
			want: []string{"a.ts", "z.ts"},
		},
		{
			name: "no exclude patterns",
			mod: func(cfg *config.FormatConfig) {
				cfg.ExcludePatterns = nil
				cfg.Extensions = config.ExtensionSet([]string{".js"})
			},
			want: []string{"dist/app.js", "node_modules/pkg/index.js", "sub/node_modules/pkg/index.js"},
		},
		{
			name: "extension set is exact and case-sensitive",
			mod:  func(cfg *config.FormatConfig) { cfg.Extensions = config.ExtensionSet([]string{".TS", ".eslintrc"}) },
			want: []string{"UPPER.TS"},
		},
		{
			name: "custom exclude",
			mod:  func(cfg *config.FormatConfig) { cfg.ExcludePatterns = []string{"sub/**"} },
			want: []string{"a.ts", "dist/app.js", "node_modules/pkg/index.js", "z.ts"},
		},
		{
			name: "patterns see a leading slash on top-level entries",
			mod: func(cfg *config.FormatConfig) {
				cfg.ExcludePatterns = []string{"/dist"}
				cfg.Extensions = config.ExtensionSet([]string{".js"})
			},
			want: []string{"node_modules/pkg/index.js", "sub/node_modules/pkg/index.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testFormatConfig()
			if tt.mod != nil {
				tt.mod(&cfg)
			}

			files, err := NewCollector(ws, zerolog.Nop()).Collect(context.Background(), ws, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(t, ws, files))
		})
	}
}

func TestCollector_DoesNotDescendIntoExcludedDirs(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{
		"src/a.ts":      "",
		"gen/out.ts":    "",
		"gen/deep/b.ts": "",
		"lib/gen/c.ts":  "",
		"lib/keep/d.ts": "",
	})

	gen := filepath.Join(ws, "gen")
	if os.Geteuid() != 0 {
		require.NoError(t, os.Chmod(gen, 0o000))
		t.Cleanup(func() { _ = os.Chmod(gen, 0o755) })
	}

	cfg := testFormatConfig()
	cfg.ExcludePatterns = []string{"**/gen"}

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	files, err := NewCollector(ws, log).Collect(context.Background(), ws, cfg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.ts", "lib/keep/d.ts"}, names(t, ws, files))

	logs := buf.String()
	assert.Contains(t, logs, "Scanning "+filepath.Join(ws, "src"))
	assert.NotContains(t, logs, "Scanning "+gen)
	assert.NotContains(t, logs, "Scanning "+filepath.Join(ws, "lib", "gen"))
	assert.NotContains(t, logs, "Failed to read directory")
}

func TestCollector_SingleFile(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{"notes.txt": "x"})

	files, err := NewCollector(ws, zerolog.Nop()).Collect(context.Background(), filepath.Join(ws, "notes.txt"), testFormatConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(ws, "notes.txt"), files[0].Path)
	assert.Equal(t, "notes.txt", files[0].Name())
}

func TestCollector_SkipsSymlinks(t *testing.T) {
	ws := t.TempDir()
	outside := t.TempDir()
	writeTree(t, ws, map[string]string{"a.ts": ""})
	writeTree(t, outside, map[string]string{"linked/b.ts": "", "c.ts": ""})

	require.NoError(t, os.Symlink(filepath.Join(outside, "linked"), filepath.Join(ws, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "c.ts"), filepath.Join(ws, "c.ts")))

	files, err := NewCollector(ws, zerolog.Nop()).Collect(context.Background(), ws, testFormatConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts"}, names(t, ws, files))
}

func TestCollector_NoSizeLimit(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{"big.ts": strings.Repeat("x", 2<<20)})

	cfg := testFormatConfig()
	cfg.MaxFileSize = 0

	files, err := NewCollector(ws, zerolog.Nop()).Collect(context.Background(), ws, cfg)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCollector_Errors(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{"a.ts": ""})
	c := NewCollector(ws, zerolog.Nop())

	_, err := c.Collect(context.Background(), filepath.Join(ws, "missing"), testFormatConfig())
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Collect(ctx, ws, testFormatConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollector_Relative(t *testing.T) {
	ws := t.TempDir()
	c := NewCollector(ws, zerolog.Nop())

	assert.Equal(t, "src/a.ts", c.Relative(filepath.Join(ws, "src", "a.ts"), ""))

	other := t.TempDir()
	assert.Equal(t, "b/c.ts", c.Relative(filepath.Join(other, "b", "c.ts"), other))
}
