package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/hay-kot/fmtdir/internal/core/history"
	"github.com/hay-kot/fmtdir/internal/printer"
	"github.com/urfave/cli/v3"
)

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	clear  bool
	format string
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or clear recorded format batches",
		UsageText: "fmtdir history [options]",
		Description: `Lists the format batches that 'fmtdir undo' can restore, newest first.

At most 20 batches are kept. Use --clear to remove all of them.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Aliases:     []string{"c"},
				Usage:       "clear all recorded batches",
				Destination: &cmd.clear,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.clear {
		if err := cmd.flags.Service.ClearHistory(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		p.Successf("History cleared")
		return nil
	}

	items, err := cmd.flags.Service.History(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if cmd.format == "json" {
		return outputHistoryJSON(c, items)
	}

	if len(items) == 0 {
		p.Infof("No format history")
		return nil
	}

	return printHistory(c, items)
}

type historyJSON struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Files     []string  `json:"files"`
}

func outputHistoryJSON(c *cli.Command, items []history.Item) error {
	out := make([]historyJSON, 0, len(items))
	for _, item := range items {
		files := make([]string, len(item.Files))
		for i, f := range item.Files {
			files[i] = f.Path
		}
		out = append(out, historyJSON{ID: item.ID, Timestamp: item.Timestamp, Files: files})
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printHistory(c *cli.Command, items []history.Item) error {
	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTIME\tFILES\tFIRST FILE")

	for _, item := range items {
		first := ""
		if len(item.Files) > 0 {
			first = item.Files[0].Path
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			item.ID,
			item.Timestamp.Local().Format(time.DateTime),
			len(item.Files),
			first,
		)
	}

	return w.Flush()
}
