package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fmtdir/internal/commands"
	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/core/document"
	"github.com/hay-kot/fmtdir/internal/core/format"
	"github.com/hay-kot/fmtdir/internal/formatdir"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/internal/output"
	"github.com/hay-kot/fmtdir/internal/printer"
	"github.com/hay-kot/fmtdir/internal/store/jsonfile"
	"github.com/hay-kot/fmtdir/internal/tui"
	"github.com/hay-kot/fmtdir/pkg/executil"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("warn", ""); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	var outputFile *os.File

	app := &cli.Command{
		Name:      "fmtdir",
		Usage:     "Format every file in a directory with one command",
		UsageText: "fmtdir [global options] command [command options]",
		Description: `fmtdir runs the formatter configured for each file's language over a
whole directory tree, a bounded number of files at a time.

The original contents of every batch are recorded so 'fmtdir undo' can
restore them. Run 'fmtdir doc usage' for examples.

Run 'fmtdir' with no arguments to format the --active-file.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "diagnostic log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FMTDIR_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to diagnostic log file (optional)",
				Sources:     cli.EnvVars("FMTDIR_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FMTDIR_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "workspace",
				Aliases:     []string{"w"},
				Usage:       "workspace root that exclude patterns and editor overrides are relative to (default: current directory)",
				Sources:     cli.EnvVars("FMTDIR_WORKSPACE"),
				Destination: &flags.Workspace,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FMTDIR_DATA_DIR"),
				Value:       config.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := setupLogger(flags.LogLevel, flags.LogFile); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			locale := cfg.Language
			if locale == config.LanguageAuto {
				locale = i18n.DetectLocale(os.Getenv)
			}
			flags.Catalog = i18n.NewCatalog(locale)

			root, err := filepath.Abs(flags.Workspace)
			if err != nil {
				return ctx, fmt.Errorf("resolve workspace: %w", err)
			}

			outputFile, err = output.OpenFile(cfg.OutputLog())
			if err != nil {
				return ctx, err
			}

			var (
				exec     = &executil.RealExecutor{}
				registry = format.NewCommandRegistry(cfg.Formatters, cfg.FormatterPriority, exec, log.With().Str("component", "format").Logger())
				logger   = log.With().Str("component", "formatdir").Logger()
			)

			flags.Store = jsonfile.NewKVStore(cfg.StateFile())
			flags.Terminal = tui.NewTerminal(printer.Ctx(ctx), flags.Catalog, os.Stdin, os.Stderr, logger)

			flags.Service, err = formatdir.New(cfg, formatdir.Deps{
				WorkspaceRoot: root,
				Workspace:     document.NewFileWorkspace(),
				Formatter:     registry,
				Store:         flags.Store,
				Output:        output.NewChannel(outputFile),
				Catalog:       flags.Catalog,
				Surface:       flags.Terminal,
				Previewer:     flags.Terminal,
			}, logger, os.Stdout)
			if err != nil {
				return ctx, fmt.Errorf("create service: %w", err)
			}

			return ctx, nil
		},
	}

	formatCmd := commands.NewFormatCmd(flags)

	app = formatCmd.Register(app)
	app = commands.NewUndoCmd(flags).Register(app)
	app = commands.NewHistoryCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewDocCmd(flags).Register(app)

	// Register format flags on root command
	app.Flags = append(app.Flags, formatCmd.Flags()...)

	// Format the active file when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'fmtdir --help' for usage", c.Args().First())
		}
		return formatCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	if outputFile != nil {
		_ = outputFile.Close()
	}

	os.Exit(exitCode)
}

func setupLogger(level string, logFile string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		// Write to both console and file
		w = io.MultiWriter(
			zerolog.ConsoleWriter{Out: os.Stderr},
			file,
		)
	}

	log.Logger = log.Output(w).Level(parsedLevel)

	return nil
}
