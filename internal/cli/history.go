package cli

import (
	"fmt"

	"github.com/clarahq/clara/internal/storage"
)

type HistoryCmd struct {
	Room string `arg:"" help:"Room name or ID."`
	From string `help:"Start date (YYYY-MM-DD), inclusive."`
	To   string `help:"End date (YYYY-MM-DD), inclusive."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	id, err := resolveRoom(ctx, c.Room)
	if err != nil {
		return err
	}
	room, err := ctx.Store.GetRoom(id)
	if err != nil {
		return err
	}

	var rng *storage.DateRange
	if c.From != "" || c.To != "" {
		from := c.From
		if from == "" {
			from = "0001-01-01"
		} else if from, err = resolveDate(from); err != nil {
			return err
		}
		to, err := resolveDate(c.To)
		if err != nil {
			return err
		}
		rng = &storage.DateRange{From: from, To: to}
	}

	checkins, err := ctx.Ledger.History(id, rng)
	if err != nil {
		return err
	}

	if len(checkins) == 0 {
		fmt.Printf("No check-ins recorded for %s.\n", roomLabel(room.Name, room.Emoji))
		return nil
	}

	fmt.Printf("History for %s:\n", roomLabel(room.Name, room.Emoji))
	for _, checkin := range checkins {
		if checkin.IsTidy {
			fmt.Printf("  %s  ✓ tidy\n", checkin.Date)
			continue
		}
		line := fmt.Sprintf("  %s  ✗ not tidy", checkin.Date)
		if checkin.Reason != "" {
			line += fmt.Sprintf(" (%s)", checkin.Reason)
		}
		fmt.Println(line)
	}
	return nil
}
