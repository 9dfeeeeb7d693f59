// Package printer writes styled status, warning, and error lines to a terminal.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a (Tokyo Night green)
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68 (Tokyo Night yellow)
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89 (Tokyo Night comment)
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Arrow = "»"
	Dot   = "•"
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer  io.Writer
	noColor bool
}

// New creates a Printer that writes to w. Colors are disabled when NO_COLOR is set.
func New(w io.Writer) *Printer {
	return &Printer{
		writer:  w,
		noColor: os.Getenv("NO_COLOR") != "",
	}
}

// Plain returns a Printer that never emits ANSI escapes.
func Plain(w io.Writer) *Printer {
	return &Printer{writer: w, noColor: true}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// FatalError prints a boxed error and does NOT exit. Validation errors get one
// line per field.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	p.box("Error", []string{p.colorize(ColorGray, err.Error())})
}

func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	var body []string

	// "load config: invalid config: <field errors>" keeps the leading context.
	errStr, fieldErrStr := wrappedErr.Error(), fieldErrs.Error()
	if idx := strings.Index(errStr, fieldErrStr); idx > 0 {
		body = append(body, p.colorize(ColorGray, strings.TrimSuffix(errStr[:idx], ": ")), "")
	}

	for _, fe := range fieldErrs {
		line := p.colorize(ColorRed, Cross) + " "
		if fe.Field != "" {
			line += p.colorize(ColorGray, fe.Field+": ")
		}
		body = append(body, line+fe.Err.Error())
	}

	p.box("Validation Error", body)
}

func (p *Printer) box(title string, body []string) {
	var b strings.Builder
	b.WriteString(p.colorize(ColorRed, "╭ "+title) + "\n")
	for _, line := range body {
		b.WriteString(p.colorize(ColorRed, "│"))
		if line != "" {
			b.WriteString(" " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(p.colorize(ColorRed, "╵") + "\n")
	p.write(b.String())
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.symbolLine(ColorRed, Cross, format, args...)
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.symbolLine(ColorGreen, Check, format, args...)
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.symbolLine(ColorGray, Dot, format, args...)
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.symbolLine(ColorYellow, Dot, format, args...)
}

// Statusf prints a status line in gray with an arrow.
func (p *Printer) Statusf(format string, args ...any) {
	p.symbolLine(ColorGray, Arrow, format, args...)
}

// List prints items indented under the previous line.
func (p *Printer) List(items ...string) {
	for _, item := range items {
		p.write("  " + p.colorize(ColorGray, "-") + " " + item + "\n")
	}
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...) + "\n")
}

// Section prints a section header (bold + underlined)
func (p *Printer) Section(title string) {
	p.write(p.colorize(ColorBold+ColorUnderline, title) + "\n")
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.item(ColorGreen, Check, label, detail)
}

// WarnItem prints a warning item with yellow dot
func (p *Printer) WarnItem(label, detail string) {
	p.item(ColorYellow, Dot, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.item(ColorRed, Cross, label, detail)
}

func (p *Printer) item(color, symbol, label, detail string) {
	line := "  " + p.colorize(color, symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.write(line + "\n")
}

func (p *Printer) symbolLine(color, symbol, format string, args ...any) {
	p.write(p.colorize(color, symbol+" "+fmt.Sprintf(format, args...)) + "\n")
}

func (p *Printer) colorize(color, text string) string {
	if p.noColor {
		return text
	}
	return color + text + ColorReset
}

func (p *Printer) write(s string) {
	_, _ = io.WriteString(p.writer, s)
}
