package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/streaks"
)

var (
	statusHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	statusStreakStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("114"))
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	rooms, err := ctx.Store.GetActiveRooms()
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms yet. Add one with 'clara room add <name>'.")
		return nil
	}

	var results []streaks.RoomResult
	var allCheckins []models.Checkin

	fmt.Println(statusHeaderStyle.Render("Rooms"))
	for _, room := range rooms {
		checkins, err := ctx.Store.GetCheckinsForRoom(room.ID, nil)
		if err != nil {
			return err
		}

		result := streaks.Compute(checkins)
		results = append(results, streaks.RoomResult{RoomID: room.ID, Result: result})
		allCheckins = append(allCheckins, checkins...)

		streak := fmt.Sprintf("streak %d", result.Current)
		if result.Current > 0 {
			streak = statusStreakStyle.Render(fmt.Sprintf("🔥 %d", result.Current))
		}
		fmt.Printf("  %-24s %s (best %d, last: %s)\n",
			roomLabel(room.Name, room.Emoji),
			streak, result.Best, lastResultLabel(result.Last))
	}

	stats := streaks.ComputeDashboard(results, allCheckins, today())
	fmt.Println()
	fmt.Println(statusHeaderStyle.Render("This week"))
	fmt.Printf("  Active rooms: %d\n", stats.ActiveRooms)
	fmt.Printf("  Combined streaks: %d current / %d best\n", stats.TotalCurrent, stats.TotalBest)
	fmt.Printf("  Completion rate (7d): %d%%\n", stats.CompletionRate)
	return nil
}
