// Package tui implements the interactive terminal surface: notifications,
// progress, the format preview, and the reconfigure prompts.
package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/hay-kot/fmtdir/internal/formatdir"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/internal/printer"
	"github.com/hay-kot/fmtdir/internal/styles"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Terminal is a formatdir.Surface and formatdir.Previewer backed by a
// terminal. When either end is not a TTY it degrades to plain printed lines
// and prompts resolve to their negative answer.
type Terminal struct {
	printer     *printer.Printer
	catalog     *i18n.Catalog
	in          io.Reader
	out         io.Writer
	interactive bool
	log         zerolog.Logger

	mu         sync.Mutex
	lastStatus string
}

var (
	_ formatdir.Surface   = (*Terminal)(nil)
	_ formatdir.Previewer = (*Terminal)(nil)
)

// NewTerminal creates a Terminal reading prompts from in and drawing to out.
func NewTerminal(p *printer.Printer, catalog *i18n.Catalog, in io.Reader, out io.Writer, log zerolog.Logger) *Terminal {
	return &Terminal{
		printer:     p,
		catalog:     catalog,
		in:          in,
		out:         out,
		interactive: IsTerminal(in) && IsTerminal(out),
		log:         log,
	}
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (t *Terminal) Info(msg string) {
	t.printer.Infof("%s", msg)
}

func (t *Terminal) Warn(msg string) {
	t.printer.Warnf("%s", msg)
}

// SetStatus prints text unless it repeats the previous status.
func (t *Terminal) SetStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if text == t.lastStatus {
		return
	}
	t.lastStatus = text
	t.printer.Statusf("%s", text)
}

// Ask shows msg with action as the affirmative choice.
func (t *Terminal) Ask(ctx context.Context, msg, action string) bool {
	if !t.interactive {
		t.printer.Infof("%s", msg)
		return false
	}

	var chosen bool
	form := t.form(huh.NewGroup(
		huh.NewConfirm().
			Title(msg).
			Affirmative(action).
			Negative(t.catalog.T(i18n.No)).
			Value(&chosen),
	))

	if err := form.RunWithContext(ctx); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			t.log.Warn().Err(err).Msg("prompt failed")
		}
		return false
	}
	return chosen
}

// RunWithProgress runs fn behind a progress bar. Pressing esc or ctrl+c
// cancels the context passed to fn; the display stays up until fn returns.
func (t *Terminal) RunWithProgress(ctx context.Context, title string, total int, fn func(ctx context.Context, hooks formatdir.Hooks)) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !t.interactive {
		t.printer.Statusf("%s", title)
		fn(ctx, formatdir.Hooks{
			Progress: func(_ float64, message string) {
				t.printer.Statusf("%s", message)
			},
		})
		return
	}

	p := tea.NewProgram(
		newProgressModel(title, total, cancel),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(ctx, formatdir.Hooks{
			Progress: func(increment float64, message string) {
				p.Send(progressMsg{increment: increment, message: message})
			},
			Status: func(text string) {
				p.Send(statusMsg(text))
			},
		})
		p.Send(finishedMsg{})
	}()

	if _, err := p.Run(); err != nil {
		t.log.Warn().Err(err).Msg("progress display failed")
		cancel()
	}
	<-done
}

func (t *Terminal) form(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(styles.FormTheme()).
		WithInput(t.in).
		WithOutput(t.out)
}
