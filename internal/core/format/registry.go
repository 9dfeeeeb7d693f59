package format

import (
	"context"
	"fmt"

	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/pkg/executil"
	"github.com/rs/zerolog"
)

type entry struct {
	name      string
	formatter Formatter
}

// Registry dispatches documents to the formatter registered for their language.
type Registry struct {
	formatters map[string][]entry
	priority   map[string]string
	log        zerolog.Logger
}

// NewRegistry creates an empty registry. priority maps a language identifier
// or a dot-prefixed extension to the name of the preferred formatter.
func NewRegistry(priority map[string]string, log zerolog.Logger) *Registry {
	return &Registry{
		formatters: make(map[string][]entry),
		priority:   priority,
		log:        log,
	}
}

// NewCommandRegistry builds a registry from command definitions, in order.
func NewCommandRegistry(defs []Definition, priority map[string]string, exec executil.Executor, log zerolog.Logger) *Registry {
	r := NewRegistry(priority, log)
	for _, def := range defs {
		r.Register(def.Name, NewCommandFormatter(def, exec, log), def.Languages...)
	}
	return r
}

// Register adds f under name for each of languages. Earlier registrations win
// unless the priority map names a different formatter.
func (r *Registry) Register(name string, f Formatter, languages ...string) {
	for _, lang := range languages {
		r.formatters[lang] = append(r.formatters[lang], entry{name: name, formatter: f})
	}
}

// Resolve returns the formatter for path and its name.
func (r *Registry) Resolve(path string) (Formatter, string, error) {
	lang := LanguageID(path)
	candidates := r.formatters[lang]
	if len(candidates) == 0 {
		return nil, "", fmt.Errorf("%w for language %q", ErrNoFormatter, lang)
	}

	preferred, ok := r.priority[Extension(path)]
	if !ok {
		preferred, ok = r.priority[lang]
	}
	if ok {
		for _, e := range candidates {
			if e.name == preferred {
				return e.formatter, e.name, nil
			}
		}
		r.log.Debug().
			Str("language", lang).
			Str("preferred", preferred).
			Msg("preferred formatter not registered for language, using default")
	}

	return candidates[0].formatter, candidates[0].name, nil
}

// Format formats doc with the formatter resolved for its path.
func (r *Registry) Format(ctx context.Context, doc *document.Document, opts Options) ([]document.Edit, error) {
	f, _, err := r.Resolve(doc.Path)
	if err != nil {
		return nil, err
	}
	return f.Format(ctx, doc, opts)
}
