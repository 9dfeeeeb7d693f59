package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/i18n"
)

// ErrNotInteractive is returned by prompts that need a terminal.
var ErrNotInteractive = errors.New("interactive prompts require a terminal")

type reconfigureAnswers struct {
	Extensions string
	Recursive  bool
	Customize  bool
	Excludes   string
}

func answersFrom(fc *config.FormatConfig) reconfigureAnswers {
	return reconfigureAnswers{
		Extensions: strings.Join(fc.ExtensionList(config.DefaultExtensions), ", "),
		Recursive:  fc.Recursive,
		Excludes:   strings.Join(fc.ExcludePatterns, ", "),
	}
}

// apply overrides the run configuration. Exclude patterns change only when the
// user chose to customize them.
func (a reconfigureAnswers) apply(fc *config.FormatConfig) {
	fc.Extensions = config.ExtensionSet(config.SplitList(a.Extensions))
	fc.Recursive = a.Recursive
	if a.Customize {
		fc.ExcludePatterns = config.SplitList(a.Excludes)
	}
}

// Reconfigure prompts for extensions, recursion, and exclude patterns for a
// single run and applies the answers to fc. Aborting any prompt returns
// config.ErrAborted and leaves fc untouched.
func (t *Terminal) Reconfigure(ctx context.Context, fc *config.FormatConfig) error {
	if !t.interactive {
		return ErrNotInteractive
	}

	a := answersFrom(fc)
	yesNo := []huh.Option[bool]{
		huh.NewOption(t.catalog.T(i18n.Yes), true),
		huh.NewOption(t.catalog.T(i18n.No), false),
	}

	form := t.form(
		huh.NewGroup(
			huh.NewInput().
				Title(t.catalog.T(i18n.InputExtensions)).
				Placeholder(t.catalog.T(i18n.ExtensionsPlaceholder)).
				Value(&a.Extensions),
			huh.NewSelect[bool]().
				Title(t.catalog.T(i18n.Recursive)).
				Options(yesNo...).
				Value(&a.Recursive),
			huh.NewSelect[bool]().
				Title(t.catalog.T(i18n.CustomizeExclude)).
				Options(yesNo...).
				Value(&a.Customize),
		),
		huh.NewGroup(
			huh.NewInput().
				Title(t.catalog.T(i18n.InputExcludePatterns)).
				Placeholder(t.catalog.T(i18n.ExcludePlaceholder)).
				Value(&a.Excludes),
		).WithHideFunc(func() bool { return !a.Customize }),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return config.ErrAborted
		}
		return err
	}

	a.apply(fc)
	return nil
}
