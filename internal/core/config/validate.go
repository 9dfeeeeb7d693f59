package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/hay-kot/fmtdir/internal/core/format"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this checks template syntax, glob patterns, formatter
// references, and file access.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append(fe.Field, fe.Err)
			}
		} else {
			errs = errs.Append("", err)
		}
	}

	errs = c.validateFileAccess(errs, configPath)
	errs = c.validateFormatterCommands(errs)
	errs = c.validateFormatterPriority(errs)
	errs = c.validateEditorOverrides(errs)

	return errs.ToError()
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(errs criterio.FieldErrorsBuilder, configPath string) criterio.FieldErrorsBuilder {
	if configPath != "" {
		info, err := os.Stat(configPath)
		switch {
		case err == nil && info.IsDir():
			errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
		case err != nil && !os.IsNotExist(err):
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		info, err := os.Stat(c.DataDir)
		switch {
		case err == nil && !info.IsDir():
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		case err != nil && !os.IsNotExist(err):
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	return errs
}

// validateFormatterCommands checks template syntax for formatter commands.
func (c *Config) validateFormatterCommands(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	for i, f := range c.Formatters {
		if f.Command == "" {
			continue
		}
		if err := tmpl.Validate(f.Command, format.CommandData{}); err != nil {
			errs = errs.Append(
				fmt.Sprintf("formatters[%d].command", i),
				fmt.Errorf("template error: %w (available: .Path, .Language, .TabSize, .InsertSpaces)", err),
			)
		}
	}
	return errs
}

// validateFormatterPriority checks that every preferred formatter exists and
// handles the language it is preferred for.
func (c *Config) validateFormatterPriority(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	byName := make(map[string]format.Definition, len(c.Formatters))
	for _, f := range c.Formatters {
		byName[f.Name] = f
	}

	keys := make([]string, 0, len(c.FormatterPriority))
	for k := range c.FormatterPriority {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := c.FormatterPriority[key]
		def, ok := byName[name]
		if !ok {
			errs = errs.Append("formatter_priority."+key, fmt.Errorf("unknown formatter %q", name))
			continue
		}

		lang := key
		if len(key) > 0 && key[0] == '.' {
			lang = format.LanguageID("file" + key)
		}
		if !def.Handles(lang) {
			errs = errs.Append("formatter_priority."+key, fmt.Errorf("formatter %q does not handle language %q", name, lang))
		}
	}
	return errs
}

// validateEditorOverrides checks override patterns are valid globs.
func (c *Config) validateEditorOverrides(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	for i, o := range c.Editor.Overrides {
		field := fmt.Sprintf("editor.overrides[%d]", i)
		if !doublestar.ValidatePattern(o.Pattern) {
			errs = errs.Append(field+".pattern", fmt.Errorf("invalid glob %q", o.Pattern))
		}
		if o.TabSize != nil && *o.TabSize < 1 {
			errs = errs.Append(field+".tab_size", fmt.Errorf("must be at least 1, got %d", *o.TabSize))
		}
	}
	return errs
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, ext := range c.FileExtensions {
		lang := format.LanguageID("file" + ext)
		if !c.hasFormatterFor(lang) {
			warnings = append(warnings, ValidationWarning{
				Category: "Formatters",
				Item:     ext,
				Message:  fmt.Sprintf("no formatter handles language %q; these files will fail", lang),
			})
		}
	}

	if len(c.Formatters) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Formatters",
			Item:     "formatters",
			Message:  "no formatters defined; every file will fail",
		})
	}

	if c.MaxFileSize == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Collection",
			Item:     "max_file_size",
			Message:  "no file size limit; large generated files will be formatted",
		})
	}

	if len(c.FileExtensions) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Collection",
			Item:     "file_extensions",
			Message:  "no file extensions selected; directories will yield no files",
		})
	}

	if c.Language != LanguageAuto && !hasCatalog(c.Language) {
		warnings = append(warnings, ValidationWarning{
			Category: "Messages",
			Item:     "language",
			Message: fmt.Sprintf("no messages for %q; falling back to %s (available: %s)",
				c.Language, i18n.DefaultLocale, strings.Join(i18n.Locales(), ", ")),
		})
	}

	return warnings
}

func (c *Config) hasFormatterFor(lang string) bool {
	for _, f := range c.Formatters {
		if f.Handles(lang) {
			return true
		}
	}
	return false
}

// hasCatalog reports whether lang resolves to a catalog of its own rather
// than the default fallback.
func hasCatalog(lang string) bool {
	if resolved := i18n.Resolve(lang); resolved != i18n.DefaultLocale {
		return true
	}
	norm := strings.ToLower(strings.ReplaceAll(lang, "_", "-"))
	return norm == i18n.DefaultLocale || strings.HasPrefix(norm, i18n.DefaultLocale+"-")
}
