package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/clarahq/clara/internal/cli"
	"github.com/clarahq/clara/internal/config"
	"github.com/clarahq/clara/internal/ledger"
	"github.com/clarahq/clara/internal/registry"
	"github.com/clarahq/clara/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	DB      string `help:"Storage file path (overrides config; .json selects the JSON backend)." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize clara storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Checkin  cli.CheckinCmd  `cmd:"" help:"Record a tidy/not-tidy check-in."`
	History  cli.HistoryCmd  `cmd:"" help:"Show a room's check-in history."`
	Status   cli.StatusCmd   `cmd:"" help:"Show streaks across all rooms."`
	Nudge    cli.NudgeCmd    `cmd:"" help:"Generate motivational nudges."`
	Notify   cli.NotifyCmd   `cmd:"" help:"Send a nudge to the tray app."`
	Settings cli.SettingsCmd `cmd:"" help:"View or update settings."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all data as JSON."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run storage diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debugging helpers."`
	Room     struct {
		Add     cli.RoomAddCmd     `cmd:"" help:"Add a new room."`
		List    cli.RoomListCmd    `cmd:"" help:"List rooms."`
		Rename  cli.RoomRenameCmd  `cmd:"" help:"Rename a room."`
		Archive cli.RoomArchiveCmd `cmd:"" help:"Archive a room (history is kept)."`
		Reorder cli.RoomReorderCmd `cmd:"" help:"Set the display order of rooms."`
	} `cmd:"" help:"Manage rooms."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a database backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("clara"),
		kong.Description("Tidy-habit tracker for the rooms of your home"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	level := slog.LevelInfo
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	configPath := CLI.Config
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.Database.Path
	if CLI.DB != "" {
		dbPath = CLI.DB
	}

	// The extension selects the backend.
	var store storage.Provider
	if strings.HasSuffix(dbPath, ".json") {
		store = storage.NewJSONStore(dbPath)
	} else {
		store = storage.NewSQLiteStore(dbPath)
	}

	appCtx := &cli.Context{
		Store:    store,
		Registry: registry.New(store),
		Ledger:   ledger.New(store),
		Config:   cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
