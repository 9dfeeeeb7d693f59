package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/fmtdir/internal/formatdir"
	"github.com/hay-kot/fmtdir/internal/i18n"
)

// ShowPreview lists files and asks for confirmation. Aborting the prompt, or
// having no terminal to prompt on, cancels the format.
func (t *Terminal) ShowPreview(ctx context.Context, files []formatdir.FileHandle, onConfirm func(ctx context.Context) error, onCancel func()) error {
	title := t.catalog.T(i18n.PreviewTitle, len(files))

	if !t.interactive {
		t.printer.Section(title)
		t.printer.List(previewLines(files)...)
		onCancel()
		return nil
	}

	var apply bool
	form := t.form(huh.NewGroup(
		huh.NewNote().
			Title(title).
			Description(t.catalog.T(i18n.PreviewDescription)+"\n\n"+strings.Join(previewLines(files), "\n")),
		huh.NewConfirm().
			Affirmative(t.catalog.T(i18n.ApplyChanges)).
			Negative(t.catalog.T(i18n.CancelFormat)).
			Value(&apply),
	))

	if err := form.RunWithContext(ctx); err != nil {
		onCancel()
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if !apply {
		onCancel()
		return nil
	}
	return onConfirm(ctx)
}

func previewLines(files []formatdir.FileHandle) []string {
	lines := make([]string, len(files))
	for i, f := range files {
		lines[i] = f.Name() + "  " + f.Path
	}
	return lines
}
