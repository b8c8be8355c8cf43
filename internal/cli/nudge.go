package cli

import (
	"fmt"

	"github.com/clarahq/clara/internal/insights"
	"github.com/clarahq/clara/internal/notifier"
)

type NudgeCmd struct {
	Notify bool `help:"Also deliver the first nudge to the tray app."`
}

func (c *NudgeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	rooms, err := ctx.Store.GetActiveRooms()
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms to nudge about. Add one with 'clara room add <name>'.")
		return nil
	}

	date := today()
	var summaries []insights.RoomSummary
	for _, room := range rooms {
		checkins, err := ctx.Store.GetCheckinsForRoom(room.ID, nil)
		if err != nil {
			return err
		}
		summaries = append(summaries, insights.SummarizeRoom(room.Name, checkins, date))
	}

	messages := insights.GenerateNudges(summaries)
	for _, msg := range messages {
		fmt.Printf("  • %s\n", msg)
	}

	if c.Notify && len(messages) > 0 {
		if err := notifier.New().Notify(messages[0]); err != nil {
			return fmt.Errorf("sending notification: %w", err)
		}
		fmt.Println("\nSent to tray.")
	}
	return nil
}

type NotifyCmd struct {
	Text string `arg:"" optional:"" help:"Message to send (default: today's top nudge)."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	text := c.Text
	if text == "" {
		if err := ctx.Store.Init(); err != nil {
			return err
		}

		rooms, err := ctx.Store.GetActiveRooms()
		if err != nil {
			return err
		}

		date := today()
		var summaries []insights.RoomSummary
		for _, room := range rooms {
			checkins, err := ctx.Store.GetCheckinsForRoom(room.ID, nil)
			if err != nil {
				return err
			}
			summaries = append(summaries, insights.SummarizeRoom(room.Name, checkins, date))
		}

		messages := insights.GenerateNudges(summaries)
		if len(messages) == 0 {
			fmt.Println("Nothing to send.")
			return nil
		}
		text = messages[0]
	}

	if err := notifier.New().Notify(text); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	fmt.Println("Notification sent.")
	return nil
}
