package formatdir

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/internal/core/format"
	"github.com/hay-kot/fmtdir/internal/core/history"
	"github.com/hay-kot/fmtdir/internal/core/state"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/internal/output"
	"github.com/rs/zerolog"
)

// Surface is the user-facing notification layer.
type Surface interface {
	Info(msg string)
	Warn(msg string)
	SetStatus(text string)
	// Ask shows msg with a single action and reports whether it was chosen.
	Ask(ctx context.Context, msg, action string) bool
	// RunWithProgress runs fn while displaying progress for total items.
	// Cancelling the display cancels the context passed to fn.
	RunWithProgress(ctx context.Context, title string, total int, fn func(ctx context.Context, hooks Hooks))
}

// Previewer lets the user confirm the file list before formatting. Exactly
// one of onConfirm or onCancel is called.
type Previewer interface {
	ShowPreview(ctx context.Context, files []FileHandle, onConfirm func(ctx context.Context) error, onCancel func()) error
}

// Service orchestrates collection, snapshots, formatting, and undo.
type Service struct {
	collector *Collector
	executor  *Executor
	history   *history.Log
	surface   Surface
	previewer Previewer
	catalog   *i18n.Catalog
	output    *output.Channel
	outLog    zerolog.Logger
	log       zerolog.Logger
	stdout    io.Writer
}

// Deps are the collaborators a Service is built from.
type Deps struct {
	WorkspaceRoot string
	Workspace     document.Workspace
	Formatter     format.Formatter
	Store         state.Store
	Output        *output.Channel
	Catalog       *i18n.Catalog
	Surface       Surface
	Previewer     Previewer // optional
}

// New creates a new Service.
func New(cfg *config.Config, deps Deps, log zerolog.Logger, stdout io.Writer) (*Service, error) {
	level, err := output.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	outLog := output.NewLogger(deps.Output, level)
	collector := NewCollector(deps.WorkspaceRoot, outLog)
	editor := cfg.Editor

	options := func(path string) format.Options {
		return editor.OptionsFor(collector.Relative(path, ""))
	}

	return &Service{
		collector: collector,
		executor:  NewExecutor(deps.Workspace, deps.Formatter, options, outLog),
		history:   history.New(deps.Store, deps.Workspace, outLog),
		surface:   deps.Surface,
		previewer: deps.Previewer,
		catalog:   deps.Catalog,
		output:    deps.Output,
		outLog:    outLog,
		log:       log,
		stdout:    stdout,
	}, nil
}

// Format collects the files under target and formats them. An empty target
// reports that there is nothing to format. The result is zero when nothing
// ran, including when the preview was cancelled.
func (s *Service) Format(ctx context.Context, target string, cfg config.FormatConfig) (BatchResult, error) {
	if target == "" {
		s.surface.Info(s.catalog.T(i18n.NoFiles))
		return BatchResult{}, nil
	}

	files, err := s.collector.Collect(ctx, target, cfg)
	if err != nil {
		s.outLog.Error().Msgf("Failed to format directory: %v", err)
		return BatchResult{}, fmt.Errorf("collect files: %w", err)
	}

	s.log.Debug().Str("target", target).Int("files", len(files)).Msg("collected files")

	if len(files) == 0 {
		s.surface.Info(s.catalog.T(i18n.NoFiles))
		return BatchResult{}, nil
	}

	if !cfg.Preview || s.previewer == nil {
		return s.run(ctx, files, cfg), nil
	}

	var res BatchResult
	confirm := func(ctx context.Context) error {
		res = s.run(ctx, files, cfg)
		return nil
	}
	cancel := func() {
		s.outLog.Info().Msg("Format preview cancelled")
		s.surface.Info(s.catalog.T(i18n.PreviewCancelled))
	}

	if err := s.previewer.ShowPreview(ctx, files, confirm, cancel); err != nil {
		return res, fmt.Errorf("preview: %w", err)
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, files []FileHandle, cfg config.FormatConfig) BatchResult {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	id, err := s.history.Add(ctx, paths)
	if err != nil {
		s.outLog.Error().Msgf("Failed to record history: %v", err)
	} else {
		s.log.Debug().Str("id", id).Msg("recorded snapshot")
	}

	var res BatchResult
	if cfg.ShowProgress {
		s.surface.RunWithProgress(ctx, s.catalog.T(i18n.Formatting), len(files), func(ctx context.Context, hooks Hooks) {
			res = s.executor.Execute(ctx, files, cfg, hooks)
		})
	} else {
		s.surface.SetStatus(s.catalog.T(i18n.StatusFormatting, "..."))
		res = s.executor.Execute(ctx, files, cfg, Hooks{})
	}

	s.report(ctx, res, cfg)
	return res
}

func (s *Service) report(ctx context.Context, res BatchResult, cfg config.FormatConfig) {
	if res.Cancelled {
		s.surface.Info(s.catalog.T(i18n.Cancelled))
		return
	}

	s.surface.SetStatus(s.catalog.T(i18n.StatusDone))

	msg := s.catalog.T(i18n.Complete, res.Success)
	s.outLog.Info().Msg(msg)

	revealed := false
	if res.Failed > 0 {
		msg = s.catalog.T(i18n.CompleteFailed, res.Success, res.Failed)
		s.outLog.Warn().Msg(msg)
		s.surface.Warn(msg)

		if s.surface.Ask(ctx, s.catalog.T(i18n.FailedCount, res.Failed), s.catalog.T(i18n.ViewDetails)) {
			s.output.AppendLine(s.catalog.T(i18n.FailedFiles))
			for _, name := range res.FailedFiles {
				s.output.AppendLine("  - " + name)
			}
			s.reveal()
			revealed = true
		}
	} else {
		s.surface.Info(msg)
	}

	if cfg.OpenOutputAfterFormat && !revealed {
		s.reveal()
	}
}

func (s *Service) reveal() {
	if err := s.output.Show(s.stdout); err != nil {
		s.log.Warn().Err(err).Msg("failed to show output")
	}
}

// Undo restores the files of the most recent batch. It reports "no history"
// through the surface when there is nothing to undo.
func (s *Service) Undo(ctx context.Context) (history.UndoResult, error) {
	s.surface.SetStatus(s.catalog.T(i18n.UndoTitle))

	res, err := s.history.Undo(ctx)
	if errors.Is(err, history.ErrNoHistory) {
		s.surface.Info(s.catalog.T(i18n.NoHistory))
		return res, nil
	}
	if err != nil {
		s.outLog.Error().Msgf("Undo failed: %v", err)
		return res, err
	}

	s.surface.Info(s.catalog.T(i18n.UndoComplete, res.Restored))
	return res, nil
}

// History returns recorded batches, newest first.
func (s *Service) History(ctx context.Context) ([]history.Item, error) {
	return s.history.List(ctx)
}

// ClearHistory removes every recorded batch.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// Output returns the log surface.
func (s *Service) Output() *output.Channel {
	return s.output
}
