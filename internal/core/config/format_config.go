package config

import (
	"sort"
	"strings"
)

// FormatConfig is the resolved configuration for one format run.
type FormatConfig struct {
	Extensions            map[string]struct{}
	Recursive             bool
	ExcludePatterns       []string
	ShowProgress          bool
	ConcurrencyLimit      int
	MaxFileSize           int64
	OpenOutputAfterFormat bool
	Preview               bool
}

// FormatConfig resolves the run configuration from c.
func (c *Config) FormatConfig() FormatConfig {
	return FormatConfig{
		Extensions:            ExtensionSet(c.FileExtensions),
		Recursive:             c.Recursive,
		ExcludePatterns:       append([]string(nil), c.ExcludePatterns...),
		ShowProgress:          c.ShowProgress,
		ConcurrencyLimit:      c.ConcurrencyLimit,
		MaxFileSize:           c.MaxFileSize,
		OpenOutputAfterFormat: c.OpenOutputAfterFormat,
		Preview:               c.Preview,
	}
}

// HasExtension reports whether ext (including the dot) is selected.
// Matching is exact and case-sensitive.
func (f FormatConfig) HasExtension(ext string) bool {
	_, ok := f.Extensions[ext]
	return ok
}

// ExtensionList returns the selected extensions in the order of order,
// followed by any others in sorted order.
func (f FormatConfig) ExtensionList(order []string) []string {
	out := make([]string, 0, len(f.Extensions))
	seen := make(map[string]bool, len(f.Extensions))
	for _, ext := range order {
		if _, ok := f.Extensions[ext]; ok && !seen[ext] {
			out = append(out, ext)
			seen[ext] = true
		}
	}
	var rest []string
	for ext := range f.Extensions {
		if !seen[ext] {
			rest = append(rest, ext)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// ExtensionSet builds a lookup set from a list of extensions.
func ExtensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return set
}

// SplitList splits a comma-separated input into trimmed, non-empty items.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
