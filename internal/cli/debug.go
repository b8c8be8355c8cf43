package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show storage path."`
	DumpRoom     *DebugDumpRoomCmd     `cmd:"" help:"Dump room data as JSON."`
	DumpCheckins *DebugDumpCheckinsCmd `cmd:"" help:"Dump a room's check-ins as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpRoomCmd struct {
	Room string `arg:"" help:"Room name or ID."`
}

func (cmd *DebugDumpRoomCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	id, err := resolveRoom(ctx, cmd.Room)
	if err != nil {
		return err
	}
	room, err := ctx.Store.GetRoom(id)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(room, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpCheckinsCmd struct {
	Room string `arg:"" help:"Room name or ID."`
}

func (cmd *DebugDumpCheckinsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	id, err := resolveRoom(ctx, cmd.Room)
	if err != nil {
		return err
	}
	checkins, err := ctx.Store.GetCheckinsForRoom(id, nil)
	if err != nil {
		return fmt.Errorf("failed to get check-ins: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(checkins, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal check-ins: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
