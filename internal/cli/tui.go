package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clarahq/clara/internal/backup"
	"github.com/clarahq/clara/internal/storage"
	"github.com/clarahq/clara/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	// Automatic backup on startup, after a successful open.
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Registry, ctx.Ledger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}

// PerformAutomaticBackup takes a best-effort backup of the SQLite
// database. Failures are reported but never block startup.
func (ctx *Context) PerformAutomaticBackup() {
	if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
		return
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath(), ctx.Config.Backups.Keep)
	if _, err := mgr.Create(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}
