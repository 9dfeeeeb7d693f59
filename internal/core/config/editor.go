package config

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/fmtdir/internal/core/format"
)

// Editor holds the indentation settings passed to formatters.
type Editor struct {
	InsertSpaces bool             `yaml:"insert_spaces"`
	TabSize      int              `yaml:"tab_size"`
	Overrides    []EditorOverride `yaml:"overrides"`
}

// EditorOverride replaces editor settings for paths matching Pattern.
// Unset fields keep the inherited value.
type EditorOverride struct {
	// Pattern is a doublestar glob matched against the workspace-relative path.
	Pattern      string `yaml:"pattern"`
	InsertSpaces *bool  `yaml:"insert_spaces"`
	TabSize      *int   `yaml:"tab_size"`
}

// OptionsFor returns the formatting options for a workspace-relative,
// slash-separated path. Matching overrides apply in order, so later entries
// win.
func (e Editor) OptionsFor(rel string) format.Options {
	opts := format.Options{
		InsertSpaces: e.InsertSpaces,
		TabSize:      e.TabSize,
	}

	for _, o := range e.Overrides {
		matched, err := doublestar.Match(o.Pattern, rel)
		if err != nil || !matched {
			continue
		}
		if o.InsertSpaces != nil {
			opts.InsertSpaces = *o.InsertSpaces
		}
		if o.TabSize != nil {
			opts.TabSize = *o.TabSize
		}
	}

	return opts
}
