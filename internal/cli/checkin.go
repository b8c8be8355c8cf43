package cli

import "fmt"

type CheckinCmd struct {
	Room    string `arg:"" help:"Room name or ID."`
	Date    string `short:"d" help:"Date in YYYY-MM-DD format (default: today)." default:""`
	NotTidy bool   `short:"n" help:"Record the room as not tidy."`
	Reason  string `short:"r" help:"Why the room isn't tidy (ignored for tidy check-ins)."`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	id, err := resolveRoom(ctx, c.Room)
	if err != nil {
		return err
	}
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	checkin, err := ctx.Ledger.AddCheckin(id, date, !c.NotTidy, c.Reason)
	if err != nil {
		return err
	}

	room, err := ctx.Store.GetRoom(id)
	if err != nil {
		return err
	}

	if checkin.IsTidy {
		fmt.Printf("✓ %s checked in tidy for %s\n", roomLabel(room.Name, room.Emoji), checkin.Date)
	} else {
		fmt.Printf("Recorded %s as not tidy for %s\n", roomLabel(room.Name, room.Emoji), checkin.Date)
		if checkin.Reason != "" {
			fmt.Printf("  Reason: %s\n", checkin.Reason)
		}
	}
	return nil
}
