package formatdir

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/internal/core/format"
)

// upperFormatter upper-cases documents and records how it was called.
type upperFormatter struct {
	delay  time.Duration
	fail   map[string]error
	panics map[string]bool

	mu        sync.Mutex
	calls     []string
	opts      map[string]format.Options
	active    atomic.Int32
	maxActive atomic.Int32
}

func (f *upperFormatter) Format(ctx context.Context, doc *document.Document, opts format.Options) ([]document.Edit, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxActive.Load()
		if n <= m || f.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	name := filepath.Base(doc.Path)

	f.mu.Lock()
	f.calls = append(f.calls, name)
	if f.opts == nil {
		f.opts = make(map[string]format.Options)
	}
	f.opts[name] = opts
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	if f.panics[name] {
		panic("formatter crashed")
	}
	if err := f.fail[name]; err != nil {
		return nil, err
	}

	return format.DiffEdits(doc, strings.ToUpper(doc.Text)), nil
}

func (f *upperFormatter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// identityFormatter returns an edit that rewrites each document unchanged.
type identityFormatter struct{}

func (identityFormatter) Format(_ context.Context, doc *document.Document, _ format.Options) ([]document.Edit, error) {
	return []document.Edit{document.Replace(doc.FullRange(), doc.Text)}, nil
}

// countingWorkspace counts saves on top of the file workspace.
type countingWorkspace struct {
	*document.FileWorkspace
	saves atomic.Int32
}

func (w *countingWorkspace) Save(ctx context.Context, doc *document.Document) error {
	w.saves.Add(1)
	return w.FileWorkspace.Save(ctx, doc)
}

// recordingSurface captures everything shown to the user.
type recordingSurface struct {
	mu       sync.Mutex
	infos    []string
	warns    []string
	statuses []string
	asked    []string
	progress []string
	answer   bool
}

func (s *recordingSurface) Info(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, msg)
}

func (s *recordingSurface) Warn(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warns = append(s.warns, msg)
}

func (s *recordingSurface) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, text)
}

func (s *recordingSurface) Ask(_ context.Context, msg, action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, fmt.Sprintf("%s [%s]", msg, action))
	return s.answer
}

func (s *recordingSurface) RunWithProgress(ctx context.Context, title string, total int, fn func(ctx context.Context, hooks Hooks)) {
	fn(ctx, Hooks{
		Progress: func(_ float64, message string) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.progress = append(s.progress, message)
		},
		Status: s.SetStatus,
	})
}

// stubPreviewer confirms or cancels without user interaction.
type stubPreviewer struct {
	confirm bool
	shown   []FileHandle
}

func (p *stubPreviewer) ShowPreview(ctx context.Context, files []FileHandle, onConfirm func(ctx context.Context) error, onCancel func()) error {
	p.shown = files
	if p.confirm {
		return onConfirm(ctx)
	}
	onCancel()
	return nil
}
