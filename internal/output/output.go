// Package output implements the log surface: an append-only line log that
// users can reveal after a run.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Channel collects log lines in memory and mirrors them to an optional sink.
type Channel struct {
	mu    sync.Mutex
	lines []string
	sink  io.Writer
}

// NewChannel creates a channel. sink may be nil.
func NewChannel(sink io.Writer) *Channel {
	return &Channel{sink: sink}
}

// Write implements io.Writer. Each newline-terminated line becomes one entry.
func (c *Channel) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimRight(string(p), "\n")
	c.lines = append(c.lines, strings.Split(text, "\n")...)

	if c.sink != nil {
		if _, err := c.sink.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// AppendLine adds a raw line without level or timestamp.
func (c *Channel) AppendLine(line string) {
	_, _ = c.Write([]byte(line + "\n"))
}

// Lines returns a copy of the collected lines.
func (c *Channel) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Show writes every collected line to w.
func (c *Channel) Show(w io.Writer) error {
	for _, line := range c.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// OpenFile opens path for appending, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output log: %w", err)
	}
	return f, nil
}

// ParseLevel maps a configured log level to a zerolog level. "off" disables
// all output.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger returns a logger that writes "[15:04:05] [LEVEL] message" records
// to w, filtered by level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: true,
		FormatTimestamp: func(i any) string {
			s, _ := i.(string)
			t, err := time.Parse(zerolog.TimeFieldFormat, s)
			if err != nil {
				return "[" + s + "]"
			}
			return "[" + t.Local().Format(time.TimeOnly) + "]"
		},
		FormatLevel: func(i any) string {
			s, _ := i.(string)
			return "[" + strings.ToUpper(s) + "]"
		},
	}

	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}
