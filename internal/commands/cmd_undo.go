package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/internal/printer"
	"github.com/urfave/cli/v3"
)

type UndoCmd struct {
	flags *Flags
}

// NewUndoCmd creates a new undo command
func NewUndoCmd(flags *Flags) *UndoCmd {
	return &UndoCmd{flags: flags}
}

// Register adds the undo command to the application
func (cmd *UndoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "undo",
		Usage:     "Restore the files changed by the last format",
		UsageText: "fmtdir undo",
		Description: `Restores every file of the most recent format batch to the contents it
had before formatting and removes the batch from history.

Run it repeatedly to step back through older batches.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *UndoCmd) run(ctx context.Context, _ *cli.Command) error {
	res, err := cmd.flags.Service.Undo(ctx)
	if err != nil {
		return errors.New(cmd.flags.Catalog.T(i18n.UndoFailed, err))
	}

	if res.Restored < res.Total {
		printer.Ctx(ctx).Warnf("%d of %d files could not be restored, see %s", res.Total-res.Restored, res.Total, cmd.flags.Config.OutputLog())
	}
	return nil
}
