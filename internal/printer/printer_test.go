package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
)

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := Plain(&buf)

	p.Infof("found %d files", 3)
	p.Warnf("2 files failed")
	p.Statusf("Formatting: %s", "...")
	p.List("a.ts", "b.ts")

	want := "• found 3 files\n" +
		"• 2 files failed\n" +
		"» Formatting: ...\n" +
		"  - a.ts\n" +
		"  - b.ts\n"
	assert.Equal(t, want, buf.String())
}

func TestFatalError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		Plain(&buf).FatalError(errors.New("boom"))
		assert.Equal(t, "╭ Error\n│ boom\n╵\n", buf.String())
	})

	t.Run("field errors", func(t *testing.T) {
		var buf bytes.Buffer
		var b criterio.FieldErrorsBuilder
		verr := b.Append("concurrency_limit", errors.New("must be at least 1")).ToError()

		Plain(&buf).FatalError(fmt.Errorf("load config: %w", verr))

		out := buf.String()
		assert.Contains(t, out, "╭ Validation Error")
		assert.Contains(t, out, "│ load config")
		assert.Contains(t, out, "✘ concurrency_limit: must be at least 1")
	})

	t.Run("nil is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		Plain(&buf).FatalError(nil)
		assert.Empty(t, buf.String())
	})
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := Plain(&buf)
	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
