package cli

import (
	"fmt"
	"path/filepath"

	"github.com/clarahq/clara/internal/export"
)

type ExportCmd struct {
	Dir string `help:"Directory to write the export file to (default: configured export dir)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	dir := c.Dir
	if dir == "" {
		dir = ctx.Config.Export.Dir
	}

	snapshot, err := export.Dump(ctx.Store)
	if err != nil {
		return err
	}

	path, err := export.Write(snapshot, dir)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Exported %d rooms and %d check-ins to %s\n",
		len(snapshot.Rooms), len(snapshot.Checkins), filepath.Base(path))
	fmt.Printf("Export directory: %s\n", dir)
	return nil
}
