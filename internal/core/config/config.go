// Package config handles configuration loading and validation for fmtdir.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/fmtdir/internal/core/format"
	"gopkg.in/yaml.v3"
)

// ErrAborted is returned when the user cancels interactive reconfiguration.
var ErrAborted = errors.New("configuration aborted")

// Log levels accepted by log_level.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelError = "error"
	LogLevelOff   = "off"
)

// LanguageAuto selects the message locale from the environment.
const LanguageAuto = "auto"

// Config holds the application configuration.
type Config struct {
	FileExtensions        []string            `yaml:"file_extensions"`
	Recursive             bool                `yaml:"recursive"`
	ExcludePatterns       []string            `yaml:"exclude_patterns"`
	ShowProgress          bool                `yaml:"show_progress"`
	ConcurrencyLimit      int                 `yaml:"concurrency_limit"`
	MaxFileSize           int64               `yaml:"max_file_size"`
	LogLevel              string              `yaml:"log_level"`
	OpenOutputAfterFormat bool                `yaml:"open_output_after_format"`
	Preview               bool                `yaml:"preview"`
	FormatterPriority     map[string]string   `yaml:"formatter_priority"`
	Language              string              `yaml:"language"`
	Formatters            []format.Definition `yaml:"formatters"`
	Editor                Editor              `yaml:"editor"`
	DataDir               string              `yaml:"-"` // set by caller, not from config file
}

// DefaultExtensions are the file extensions formatted when none are configured.
var DefaultExtensions = []string{
	".js", ".ts", ".jsx", ".tsx", ".json", ".css", ".scss", ".less",
	".html", ".xml", ".md", ".yaml", ".yml", ".vue", ".py", ".java",
	".c", ".cpp", ".h", ".cs", ".go", ".rs", ".php", ".rb", ".sql",
}

// DefaultExcludePatterns are skipped when no exclude patterns are configured.
var DefaultExcludePatterns = []string{
	"**/node_modules/**", "**/dist/**", "**/build/**", "**/out/**",
	"**/.git/**", "**/vendor/**", "**/*.min.js", "**/*.min.css",
}

// DefaultFormatters returns the built-in formatter commands.
func DefaultFormatters() []format.Definition {
	return []format.Definition{
		{
			Name: "prettier",
			Languages: []string{
				"javascript", "javascriptreact", "typescript", "typescriptreact",
				"json", "css", "scss", "less", "html", "markdown", "yaml", "vue",
			},
			Command: `prettier --stdin-filepath {{ .Path | shq }} --tab-width {{ .TabSize }}{{ if not .InsertSpaces }} --use-tabs{{ end }}`,
		},
		{Name: "gofmt", Languages: []string{"go"}, Command: "gofmt"},
		{Name: "black", Languages: []string{"python"}, Command: "black -q -"},
		{Name: "rustfmt", Languages: []string{"rust"}, Command: "rustfmt --emit stdout"},
		{
			Name:      "clang-format",
			Languages: []string{"c", "cpp", "java", "csharp"},
			Command:   `clang-format --assume-filename={{ .Path | shq }}`,
		},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FileExtensions:        append([]string(nil), DefaultExtensions...),
		Recursive:             true,
		ExcludePatterns:       append([]string(nil), DefaultExcludePatterns...),
		ShowProgress:          true,
		ConcurrencyLimit:      10,
		MaxFileSize:           1048576,
		LogLevel:              LogLevelInfo,
		OpenOutputAfterFormat: false,
		Preview:               false,
		FormatterPriority:     map[string]string{},
		Language:              LanguageAuto,
		Formatters:            DefaultFormatters(),
		Editor: Editor{
			InsertSpaces: true,
			TabSize:      4,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// Booleans cannot be told apart from an explicit false and are left alone.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.FileExtensions == nil {
		c.FileExtensions = defaults.FileExtensions
	}
	if c.ExcludePatterns == nil {
		c.ExcludePatterns = defaults.ExcludePatterns
	}
	if c.ConcurrencyLimit == 0 {
		c.ConcurrencyLimit = defaults.ConcurrencyLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Language == "" {
		c.Language = defaults.Language
	}
	if c.FormatterPriority == nil {
		c.FormatterPriority = map[string]string{}
	}
	if c.Formatters == nil {
		c.Formatters = defaults.Formatters
	}
	if c.Editor.TabSize == 0 {
		c.Editor.TabSize = defaults.Editor.TabSize
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	if c.ConcurrencyLimit < 1 {
		errs = errs.Append("concurrency_limit", fmt.Errorf("must be at least 1, got %d", c.ConcurrencyLimit))
	}

	if c.MaxFileSize < 0 {
		errs = errs.Append("max_file_size", fmt.Errorf("must not be negative, got %d", c.MaxFileSize))
	}

	if !isValidLogLevel(c.LogLevel) {
		errs = errs.Append("log_level", fmt.Errorf("invalid level %q, want one of debug, info, error, off", c.LogLevel))
	}

	for i, ext := range c.FileExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = errs.Append(fmt.Sprintf("file_extensions[%d]", i), fmt.Errorf("extension %q must start with a dot", ext))
		}
	}

	for i, p := range c.ExcludePatterns {
		if strings.TrimSpace(p) == "" {
			errs = errs.Append(fmt.Sprintf("exclude_patterns[%d]", i), fmt.Errorf("pattern cannot be empty"))
		}
	}

	if c.Editor.TabSize < 1 {
		errs = errs.Append("editor.tab_size", fmt.Errorf("must be at least 1, got %d", c.Editor.TabSize))
	}

	seen := make(map[string]bool, len(c.Formatters))
	for i, f := range c.Formatters {
		field := fmt.Sprintf("formatters[%d]", i)
		if f.Name == "" {
			errs = errs.Append(field+".name", fmt.Errorf("name cannot be empty"))
			continue
		}
		if seen[f.Name] {
			errs = errs.Append(field+".name", fmt.Errorf("duplicate formatter %q", f.Name))
			continue
		}
		seen[f.Name] = true
		if strings.TrimSpace(f.Command) == "" {
			errs = errs.Append(field+".command", fmt.Errorf("command cannot be empty"))
		}
	}

	return errs.ToError()
}

// StateFile returns the path to the persisted key/value state.
func (c *Config) StateFile() string {
	return filepath.Join(c.DataDir, "state.json")
}

// OutputLog returns the path of the log surface file.
func (c *Config) OutputLog() string {
	return filepath.Join(c.DataDir, "output.log")
}

func isValidLogLevel(level string) bool {
	switch level {
	case LogLevelDebug, LogLevelInfo, LogLevelError, LogLevelOff:
		return true
	default:
		return false
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fmtdir", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fmtdir")
}
