package commands

import (
	"github.com/hay-kot/fmtdir/internal/core/config"
	"github.com/hay-kot/fmtdir/internal/core/state"
	"github.com/hay-kot/fmtdir/internal/formatdir"
	"github.com/hay-kot/fmtdir/internal/i18n"
	"github.com/hay-kot/fmtdir/internal/tui"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Workspace  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Catalog translates user-facing messages for the resolved locale
	Catalog *i18n.Catalog

	// Store is the persisted workspace state backing the history log
	Store state.Store

	// Terminal is the notification, progress, and prompt surface
	Terminal *tui.Terminal

	// Service orchestrates formatting and undo
	Service *formatdir.Service
}
