// Package format defines the formatter capability and its command-backed registry.
package format

import (
	"context"
	"errors"

	"github.com/hay-kot/fmtdir/internal/core/document"
)

// ErrNoFormatter is returned when no formatter is registered for a document's language.
var ErrNoFormatter = errors.New("no formatter registered")

// Options are the editor settings passed to a formatter.
type Options struct {
	InsertSpaces bool `json:"insert_spaces" yaml:"insert_spaces"`
	TabSize      int  `json:"tab_size" yaml:"tab_size"`
}

// Formatter formats a document and returns the edits that would make it formatted.
// An empty result means the document is already formatted.
type Formatter interface {
	Format(ctx context.Context, doc *document.Document, opts Options) ([]document.Edit, error)
}

// Func adapts a function to the Formatter interface.
type Func func(ctx context.Context, doc *document.Document, opts Options) ([]document.Edit, error)

// Format calls f.
func (f Func) Format(ctx context.Context, doc *document.Document, opts Options) ([]document.Edit, error) {
	return f(ctx, doc, opts)
}

// DiffEdits returns a single full-document replacement when formatted differs
// from the document's text, and no edits otherwise.
func DiffEdits(doc *document.Document, formatted string) []document.Edit {
	if formatted == doc.Text {
		return nil
	}
	return []document.Edit{document.Replace(doc.FullRange(), formatted)}
}
