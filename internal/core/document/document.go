// Package document defines the text document model and edit primitives used
// by the formatter and the undo history.
package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// ErrInvalidEdit is returned when an edit range is out of bounds or overlaps
// another edit in the same set.
var ErrInvalidEdit = errors.New("invalid edit")

// Range is a half-open byte span [Start, End) within a document's text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Edit replaces the text covered by Range with NewText.
type Edit struct {
	Range   Range  `json:"range"`
	NewText string `json:"new_text"`
}

// Replace returns an edit replacing r with text.
func Replace(r Range, text string) Edit {
	return Edit{Range: r, NewText: text}
}

// Document is an open text file.
type Document struct {
	Path string
	Text string
	Mode fs.FileMode

	dirty bool
}

// FullRange spans the entire text of the document.
func (d *Document) FullRange() Range {
	return Range{Start: 0, End: len(d.Text)}
}

// Dirty reports whether edits were applied since the document was opened or saved.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Workspace opens, edits and persists documents.
type Workspace interface {
	// Open reads the current content of the file at path.
	Open(ctx context.Context, path string) (*Document, error)
	// Apply applies all edits to the document or none of them.
	Apply(ctx context.Context, doc *Document, edits []Edit) error
	// Save persists the document's current text.
	Save(ctx context.Context, doc *Document) error
}

// ApplyEdits applies edits to text. Edits are sorted by start offset and must
// not overlap; if any edit is invalid the text is returned unchanged with an error.
func ApplyEdits(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	prevEnd := 0
	for i, e := range sorted {
		if e.Range.Start < 0 || e.Range.End > len(text) || e.Range.Start > e.Range.End {
			return text, fmt.Errorf("%w: range [%d,%d) outside text of length %d", ErrInvalidEdit, e.Range.Start, e.Range.End, len(text))
		}
		if i > 0 && e.Range.Start < prevEnd {
			return text, fmt.Errorf("%w: range [%d,%d) overlaps previous edit", ErrInvalidEdit, e.Range.Start, e.Range.End)
		}
		prevEnd = e.Range.End
	}

	out := make([]byte, 0, len(text))
	cursor := 0
	for _, e := range sorted {
		out = append(out, text[cursor:e.Range.Start]...)
		out = append(out, e.NewText...)
		cursor = e.Range.End
	}
	out = append(out, text[cursor:]...)

	return string(out), nil
}
