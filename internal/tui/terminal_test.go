package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/formatdir"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/internal/printer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlainTerminal(out *bytes.Buffer) *Terminal {
	return NewTerminal(printer.Plain(out), i18n.NewCatalog("en"), strings.NewReader(""), out, zerolog.Nop())
}

func defaultFormatConfig() config.FormatConfig {
	cfg := config.DefaultConfig()
	return cfg.FormatConfig()
}

func TestTerminal_NotInteractive(t *testing.T) {
	var out bytes.Buffer
	term := newPlainTerminal(&out)

	assert.False(t, term.interactive)
	assert.False(t, term.Ask(context.Background(), "2 files failed to format", "View Details"))

	term.SetStatus("Formatting: ...")
	term.SetStatus("Formatting: ...")
	term.SetStatus("Format Directory Done")
	term.Info("done")
	term.Warn("careful")

	want := "• 2 files failed to format\n" +
		"» Formatting: ...\n" +
		"» Format Directory Done\n" +
		"• done\n" +
		"• careful\n"
	assert.Equal(t, want, out.String())
}

func TestTerminal_RunWithProgressPlain(t *testing.T) {
	var out bytes.Buffer
	term := newPlainTerminal(&out)

	ran := false
	term.RunWithProgress(context.Background(), "Formatting files", 2, func(ctx context.Context, hooks formatdir.Hooks) {
		ran = true
		require.NoError(t, ctx.Err())
		require.NotNil(t, hooks.Progress)
		assert.Nil(t, hooks.Status)
		hooks.Progress(0.5, "1/2: a.ts")
		hooks.Progress(0.5, "2/2: b.ts")
	})

	assert.True(t, ran)
	assert.Equal(t, "» Formatting files\n» 1/2: a.ts\n» 2/2: b.ts\n", out.String())
}

func TestTerminal_ShowPreviewPlainCancels(t *testing.T) {
	var out bytes.Buffer
	term := newPlainTerminal(&out)

	files := []formatdir.FileHandle{{Path: "/ws/a.ts"}, {Path: "/ws/sub/b.ts"}}
	confirmed, cancelled := false, false

	err := term.ShowPreview(context.Background(), files,
		func(context.Context) error { confirmed = true; return nil },
		func() { cancelled = true },
	)

	require.NoError(t, err)
	assert.False(t, confirmed)
	assert.True(t, cancelled)
	assert.Contains(t, out.String(), "Format Preview: 2 files")
	assert.Contains(t, out.String(), "  - a.ts  /ws/a.ts\n")
	assert.Contains(t, out.String(), "  - b.ts  /ws/sub/b.ts\n")
}

func TestTerminal_ReconfigureNeedsTerminal(t *testing.T) {
	var out bytes.Buffer
	fc := defaultFormatConfig()
	err := newPlainTerminal(&out).Reconfigure(context.Background(), &fc)
	assert.ErrorIs(t, err, ErrNotInteractive)
}

func TestReconfigureAnswers(t *testing.T) {
	base := defaultFormatConfig()

	t.Run("prefills current values", func(t *testing.T) {
		a := answersFrom(&base)
		assert.True(t, strings.HasPrefix(a.Extensions, ".js, .ts, .jsx"))
		assert.True(t, a.Recursive)
		assert.Contains(t, a.Excludes, "**/node_modules/**")
	})

	tests := []struct {
		name        string
		answers     reconfigureAnswers
		wantExts    []string
		wantRecurse bool
		wantExclude []string
	}{
		{
			name:        "excludes kept unless customized",
			answers:     reconfigureAnswers{Extensions: " .ts, ,.go ", Recursive: false, Excludes: "ignored/**"},
			wantExts:    []string{".go", ".ts"},
			wantExclude: base.ExcludePatterns,
		},
		{
			name:        "customized excludes",
			answers:     reconfigureAnswers{Extensions: ".md", Recursive: true, Customize: true, Excludes: "docs/**, , vendor/**"},
			wantExts:    []string{".md"},
			wantRecurse: true,
			wantExclude: []string{"docs/**", "vendor/**"},
		},
		{
			name:        "empty inputs clear the lists",
			answers:     reconfigureAnswers{Customize: true},
			wantExts:    []string{},
			wantExclude: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := defaultFormatConfig()
			tt.answers.apply(&fc)

			assert.Equal(t, tt.wantExts, fc.ExtensionList(nil))
			assert.Equal(t, tt.wantRecurse, fc.Recursive)
			assert.Equal(t, tt.wantExclude, fc.ExcludePatterns)
		})
	}
}
