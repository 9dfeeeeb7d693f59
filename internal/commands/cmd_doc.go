package commands

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/hay-kot/fmtdir/internal/styles"
	"github.com/hay-kot/fmtdir/internal/tui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

//go:embed docs/*.md
var docsFS embed.FS

const defaultDocWidth = 100

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Usage and configuration guides",
		Description: `Prints the fmtdir guides.

Use 'fmtdir doc usage' for the commands and 'fmtdir doc config' for every
configuration key. Output is rendered when writing to a terminal.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without rendering",
				Destination: &cmd.raw,
			},
		},
		Commands: []*cli.Command{
			cmd.guideCmd("usage", "Show command usage", "docs/usage.md"),
			cmd.guideCmd("config", "Show the configuration reference", "docs/configuration.md"),
		},
	})
	return app
}

func (cmd *DocCmd) guideCmd(name, usage, file string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(_ context.Context, c *cli.Command) error {
			data, err := docsFS.ReadFile(file)
			if err != nil {
				return err
			}
			return cmd.print(c, string(data))
		},
	}
}

func (cmd *DocCmd) print(c *cli.Command, markdown string) error {
	w := c.Root().Writer

	if cmd.raw || !tui.IsTerminal(w) {
		_, err := fmt.Fprint(w, markdown)
		return err
	}

	width := defaultDocWidth
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		width = min(tw-2, defaultDocWidth)
	}

	rendered, err := renderMarkdown(markdown, width)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, styles.BannerStyle.Render(styles.Banner))
	_, err = fmt.Fprint(w, rendered)
	return err
}

func renderMarkdown(markdown string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return rendered, nil
}
