package formatdir

import (
	"context"
	"fmt"
	"sync"

	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/internal/core/format"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Hooks receive per-file progress while a batch runs. Either may be nil.
type Hooks struct {
	// Progress receives the fraction of the batch one file represents and
	// an "i/total: name" message.
	Progress func(increment float64, message string)
	// Status receives "i/total".
	Status func(text string)
}

// BatchResult aggregates the outcome of one run.
type BatchResult struct {
	Success     int
	Failed      int
	FailedFiles []string
	Cancelled   bool
	Total       int
}

// OptionsFunc returns the formatting options for a file.
type OptionsFunc func(path string) format.Options

// Executor formats files in chunks of at most ConcurrencyLimit files.
type Executor struct {
	workspace document.Workspace
	formatter format.Formatter
	options   OptionsFunc
	log       zerolog.Logger
}

// NewExecutor creates an executor.
func NewExecutor(ws document.Workspace, f format.Formatter, options OptionsFunc, log zerolog.Logger) *Executor {
	return &Executor{workspace: ws, formatter: f, options: options, log: log}
}

// Execute formats files. Chunks run in order and the files of one chunk run
// concurrently. Cancellation of ctx is checked before each chunk; files of a
// chunk that already started always run to completion and files of later
// chunks are neither formatted nor counted. Hooks fire only when
// cfg.ShowProgress is set.
func (e *Executor) Execute(ctx context.Context, files []FileHandle, cfg config.FormatConfig, hooks Hooks) BatchResult {
	total := len(files)
	res := BatchResult{Total: total}

	limit := cfg.ConcurrencyLimit
	if limit < 1 {
		limit = 1
	}

	if !cfg.ShowProgress {
		hooks = Hooks{}
	}

	if hooks.Progress != nil {
		hooks.Progress(0, fmt.Sprintf("0/%d", total))
	}

	var (
		mu        sync.Mutex
		completed int
		fileCtx   = context.WithoutCancel(ctx)
	)

	for start := 0; start < total; start += limit {
		if ctx.Err() != nil {
			e.log.Info().Msg("Formatting cancelled by user.")
			res.Cancelled = true
			return res
		}

		chunk := files[start:min(start+limit, total)]
		ok := make([]bool, len(chunk))

		var g errgroup.Group
		for i, file := range chunk {
			g.Go(func() error {
				ok[i] = e.formatFile(fileCtx, file.Path)

				mu.Lock()
				defer mu.Unlock()
				completed++
				if hooks.Progress != nil {
					hooks.Progress(1/float64(total), fmt.Sprintf("%d/%d: %s", completed, total, file.Name()))
				}
				if hooks.Status != nil {
					hooks.Status(fmt.Sprintf("%d/%d", completed, total))
				}
				return nil
			})
		}
		_ = g.Wait()

		for i, file := range chunk {
			if ok[i] {
				res.Success++
				continue
			}
			res.Failed++
			res.FailedFiles = append(res.FailedFiles, file.Name())
		}
	}

	return res
}

// formatFile formats and saves one file. Any error or panic counts as a
// failure for that file only.
func (e *Executor) formatFile(ctx context.Context, path string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Msgf("Failed to format %s: panic: %v", path, r)
			ok = false
		}
	}()

	if err := e.format(ctx, path); err != nil {
		e.log.Error().Msgf("Failed to format %s: %v", path, err)
		return false
	}
	return true
}

func (e *Executor) format(ctx context.Context, path string) error {
	doc, err := e.workspace.Open(ctx, path)
	if err != nil {
		return err
	}

	var opts format.Options
	if e.options != nil {
		opts = e.options(path)
	}

	edits, err := e.formatter.Format(ctx, doc, opts)
	if err != nil {
		return err
	}

	if len(edits) == 0 {
		return nil
	}

	if err := e.workspace.Apply(ctx, doc, edits); err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}

	if !doc.Dirty() {
		return nil
	}

	if err := e.workspace.Save(ctx, doc); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	return nil
}
