package cli

import (
	"fmt"
	"strings"

	"github.com/clarahq/clara/internal/models"
)

type RoomAddCmd struct {
	Name  string `arg:"" help:"Room name."`
	Emoji string `short:"e" help:"Optional emoji shown next to the name."`
}

func (c *RoomAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	room, err := ctx.Registry.AddRoom(c.Name, c.Emoji)
	if err != nil {
		return err
	}

	fmt.Printf("Added room: %s (ID: %s)\n", roomLabel(room.Name, room.Emoji), room.ID)
	return nil
}

type RoomListCmd struct {
	All bool `help:"Include archived rooms."`
}

func (c *RoomListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	var list []models.Room
	var err error
	if c.All {
		list, err = ctx.Store.GetAllRooms()
	} else {
		list, err = ctx.Store.GetActiveRooms()
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No rooms found. Add one with 'clara room add <name>'.")
		return nil
	}

	fmt.Println("Rooms:")
	for _, room := range list {
		status := ""
		if room.Archived {
			status = " [archived]"
		}
		fmt.Printf("  %s%s\n", roomLabel(room.Name, room.Emoji), status)
		fmt.Printf("      ID: %s\n", room.ID)
	}
	return nil
}

type RoomRenameCmd struct {
	Room string `arg:"" help:"Room name or ID."`
	Name string `arg:"" help:"New name."`
}

func (c *RoomRenameCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	id, err := resolveRoom(ctx, c.Room)
	if err != nil {
		return err
	}
	if err := ctx.Registry.RenameRoom(id, c.Name); err != nil {
		return err
	}

	fmt.Printf("Renamed room to: %s\n", strings.TrimSpace(c.Name))
	return nil
}

type RoomArchiveCmd struct {
	Room string `arg:"" help:"Room name or ID."`
}

func (c *RoomArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	room, err := ctx.Store.GetRoom(c.Room)
	if err != nil {
		id, resolveErr := resolveRoom(ctx, c.Room)
		if resolveErr != nil {
			return resolveErr
		}
		room, err = ctx.Store.GetRoom(id)
		if err != nil {
			return err
		}
	}

	if err := ctx.Registry.ArchiveRoom(room.ID); err != nil {
		return err
	}

	fmt.Printf("Archived room: %s (history preserved)\n", roomLabel(room.Name, room.Emoji))
	return nil
}

type RoomReorderCmd struct {
	Rooms []string `arg:"" help:"Room names or IDs in the desired display order."`
}

func (c *RoomReorderCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	ids := make([]string, 0, len(c.Rooms))
	for _, ref := range c.Rooms {
		id, err := resolveRoom(ctx, ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if err := ctx.Registry.Reorder(ids); err != nil {
		return err
	}

	fmt.Println("Room order updated.")
	return nil
}
