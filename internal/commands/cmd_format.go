package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/formatdir"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/urfave/cli/v3"
)

type FormatCmd struct {
	flags *Flags

	// Command-specific flags
	activeFile  string
	reconfigure bool
	preview     bool
	noProgress  bool
	concurrency int
}

// NewFormatCmd creates a new format command
func NewFormatCmd(flags *Flags) *FormatCmd {
	return &FormatCmd{flags: flags}
}

// Flags returns the format flags so the root command can share them.
func (cmd *FormatCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "active-file",
			Usage:       "file to format when no path is given",
			Sources:     cli.EnvVars("FMTDIR_ACTIVE_FILE"),
			Destination: &cmd.activeFile,
		},
		&cli.BoolFlag{
			Name:        "reconfigure",
			Aliases:     []string{"r"},
			Usage:       "prompt for extensions, recursion, and exclude patterns for this run",
			Destination: &cmd.reconfigure,
		},
		&cli.BoolFlag{
			Name:        "preview",
			Usage:       "list the files and confirm before formatting",
			Destination: &cmd.preview,
		},
		&cli.BoolFlag{
			Name:        "no-progress",
			Usage:       "disable the progress display",
			Destination: &cmd.noProgress,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Aliases:     []string{"j"},
			Usage:       "maximum number of files formatted at once (overrides concurrency_limit)",
			Destination: &cmd.concurrency,
		},
	}
}

// Register adds the format command to the application
func (cmd *FormatCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "format",
		Usage:     "Format every matching file in a directory",
		UsageText: "fmtdir format [options] [path]",
		Description: `Formats the files under path with the formatter configured for each
file's language.

Files are selected by file_extensions and exclude_patterns. Subdirectories
are visited when recursive is enabled. Files larger than max_file_size are
skipped. The original contents are recorded so 'fmtdir undo' can restore
them.

When path is omitted the --active-file is formatted instead.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run formats the target named by the first argument or --active-file.
func (cmd *FormatCmd) Run(ctx context.Context, c *cli.Command) error {
	target := c.Args().First()
	if target == "" {
		target = cmd.activeFile
	}

	fc := cmd.runConfig(c.IsSet("preview"))

	if cmd.reconfigure {
		if err := cmd.flags.Terminal.Reconfigure(ctx, &fc); err != nil {
			if errors.Is(err, config.ErrAborted) {
				return nil
			}
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := cmd.flags.Service.Format(ctx, target, fc)
	if err != nil {
		return errors.New(cmd.flags.Catalog.T(i18n.Failed, err))
	}

	return exitStatus(res)
}

// exitStatus fails the process when files failed to format. A cancelled run
// has already reported itself and exits cleanly.
func exitStatus(res formatdir.BatchResult) error {
	if res.Cancelled || res.Failed == 0 {
		return nil
	}
	return cli.Exit("", 1)
}

// runConfig applies command-line overrides to the configured run settings.
func (cmd *FormatCmd) runConfig(previewSet bool) config.FormatConfig {
	fc := cmd.flags.Config.FormatConfig()
	if previewSet {
		fc.Preview = cmd.preview
	}
	if cmd.noProgress {
		fc.ShowProgress = false
	}
	if cmd.concurrency > 0 {
		fc.ConcurrencyLimit = cmd.concurrency
	}
	return fc
}
