package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/clarahq/clara/internal/config"
	"github.com/clarahq/clara/internal/ledger"
	"github.com/clarahq/clara/internal/registry"
	"github.com/clarahq/clara/internal/storage"
	"github.com/clarahq/clara/internal/streaks"
)

type Context struct {
	Store    storage.Provider
	Registry *registry.Registry
	Ledger   *ledger.Ledger
	Config   config.Config
}

// resolveRoom finds an active room by exact id or case-insensitive name.
func resolveRoom(ctx *Context, ref string) (string, error) {
	rooms, err := ctx.Store.GetActiveRooms()
	if err != nil {
		return "", err
	}

	for _, room := range rooms {
		if room.ID == ref {
			return room.ID, nil
		}
	}
	for _, room := range rooms {
		if strings.EqualFold(room.Name, ref) {
			return room.ID, nil
		}
	}
	return "", fmt.Errorf("no active room matches %q (use 'clara room list' to see rooms)", ref)
}

func roomLabel(name, emoji string) string {
	if emoji != "" {
		return emoji + " " + name
	}
	return name
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func resolveDate(date string) (string, error) {
	if date == "" || date == "today" {
		return today(), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
	}
	return date, nil
}

func lastResultLabel(last streaks.LastResult) string {
	switch last {
	case streaks.LastTidy:
		return "tidy"
	case streaks.LastNotTidy:
		return "not tidy"
	default:
		return "never checked"
	}
}
