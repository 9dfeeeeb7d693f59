package doctor

import (
	"context"
	"strings"

	"github.com/hay-kot/fmtdir/internal/core/format"
)

// FormattersCheck verifies that every configured formatter's program is on PATH.
type FormattersCheck struct {
	defs     []format.Definition
	lookPath func(file string) (string, error)
}

// NewFormattersCheck creates a formatter availability check. lookPath is
// usually exec.LookPath.
func NewFormattersCheck(defs []format.Definition, lookPath func(string) (string, error)) *FormattersCheck {
	return &FormattersCheck{defs: defs, lookPath: lookPath}
}

func (c *FormattersCheck) Name() string {
	return "Formatters"
}

func (c *FormattersCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if len(c.defs) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "formatters",
			Status: StatusWarn,
			Detail: "no formatters configured",
		})
		return result
	}

	for _, def := range c.defs {
		langs := strings.Join(def.Languages, ", ")

		program := def.Executable()
		path, err := c.lookPath(program)
		if err != nil {
			// A missing formatter only fails files of its languages.
			result.Items = append(result.Items, CheckItem{
				Label:  def.Name,
				Status: StatusWarn,
				Detail: program + " not found in PATH (" + langs + ")",
			})
			continue
		}

		result.Items = append(result.Items, CheckItem{
			Label:  def.Name,
			Status: StatusPass,
			Detail: path,
		})
	}

	return result
}
