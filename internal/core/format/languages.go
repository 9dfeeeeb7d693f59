package format

import (
	"path/filepath"
	"strings"
)

// LanguagePlainText is reported for extensions without a known language.
const LanguagePlainText = "plaintext"

var languagesByExt = map[string]string{
	".js":   "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".json": "json",
	".css":  "css",
	".scss": "scss",
	".less": "less",
	".html": "html",
	".xml":  "xml",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
	".vue":  "vue",
	".py":   "python",
	".java": "java",
	".c":    "c",
	".cpp":  "cpp",
	".h":    "c",
	".cs":   "csharp",
	".go":   "go",
	".rs":   "rust",
	".php":  "php",
	".rb":   "ruby",
	".sql":  "sql",
}

// Extension returns the dot-prefixed extension of a file name. Leading dots of
// dotfiles are not treated as extension separators, so ".eslintrc" has none.
func Extension(name string) string {
	base := strings.TrimLeft(filepath.Base(name), ".")
	return filepath.Ext(base)
}

// LanguageID maps a file path to its language identifier.
func LanguageID(path string) string {
	if id, ok := languagesByExt[strings.ToLower(Extension(path))]; ok {
		return id
	}
	return LanguagePlainText
}
