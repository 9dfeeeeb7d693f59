// Package tmpl renders formatter command templates.
package tmpl

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"
)

// shellQuote wraps s in single quotes, escaping embedded single quotes with '\''.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var funcs = template.FuncMap{
	"shq":  shellQuote,
	"base": filepath.Base,
	"dir":  filepath.Dir,
	"ext":  filepath.Ext,
}

func parse(text string) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: shell-quote a string
//   - base, dir, ext: path helpers from path/filepath
func Render(text string, data any) (string, error) {
	t, err := parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

// Validate parses text and dry-runs it against zero-valued data so that
// unknown fields surface before any command is executed.
func Validate(text string, data any) error {
	t, err := parse(text)
	if err != nil {
		return err
	}
	if err := t.Execute(io.Discard, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}
