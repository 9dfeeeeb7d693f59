package format

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/pkg/executil"
	"github.com/hay-kot/fmtdir/pkg/tmpl"
	"github.com/rs/zerolog"
)

// Definition declares an external formatter command.
type Definition struct {
	// Name identifies the formatter in formatter_priority.
	Name string `yaml:"name"`
	// Languages the formatter handles, as returned by LanguageID.
	Languages []string `yaml:"languages"`
	// Command is a shell command template. The document text is written to
	// stdin and the formatted text is read from stdout.
	Command string `yaml:"command"`
}

// Handles reports whether the definition covers language.
func (d Definition) Handles(language string) bool {
	for _, l := range d.Languages {
		if l == language {
			return true
		}
	}
	return false
}

// Executable returns the first word of the command, which is the program that
// must be on PATH.
func (d Definition) Executable() string {
	fields := strings.Fields(d.Command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CommandData is the template context for formatter commands.
type CommandData struct {
	Path         string // Absolute path of the document
	Language     string // Language identifier
	TabSize      int    // Indent width
	InsertSpaces bool   // Indent with spaces instead of tabs
}

// CommandFormatter runs an external command to format documents.
type CommandFormatter struct {
	def      Definition
	executor executil.Executor
	log      zerolog.Logger
}

// NewCommandFormatter creates a formatter for def.
func NewCommandFormatter(def Definition, exec executil.Executor, log zerolog.Logger) *CommandFormatter {
	return &CommandFormatter{def: def, executor: exec, log: log}
}

// Name returns the definition name.
func (f *CommandFormatter) Name() string {
	return f.def.Name
}

// Format pipes the document through the command and diffs the result.
func (f *CommandFormatter) Format(ctx context.Context, doc *document.Document, opts Options) ([]document.Edit, error) {
	data := CommandData{
		Path:         doc.Path,
		Language:     LanguageID(doc.Path),
		TabSize:      opts.TabSize,
		InsertSpaces: opts.InsertSpaces,
	}

	rendered, err := tmpl.Render(f.def.Command, data)
	if err != nil {
		return nil, fmt.Errorf("render formatter %q command: %w", f.def.Name, err)
	}

	f.log.Debug().
		Str("formatter", f.def.Name).
		Str("path", doc.Path).
		Str("command", rendered).
		Msg("running formatter")

	out, err := f.executor.RunPipe(ctx, filepath.Dir(doc.Path), strings.NewReader(doc.Text), "sh", "-c", rendered)
	if err != nil {
		return nil, fmt.Errorf("formatter %q: %w", f.def.Name, err)
	}

	return DiffEdits(doc, string(out)), nil
}
