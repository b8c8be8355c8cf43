package roomlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/streaks"
)

type CheckinMsg struct {
	Room models.Room
}

type AddRoomMsg struct{}

type ArchiveRoomMsg struct {
	Room models.Room
}

// Entry pairs a room with its derived streak values for display.
type Entry struct {
	Room   models.Room
	Result streaks.Result
}

type Item struct {
	Entry Entry
}

func (i Item) Title() string {
	name := i.Entry.Room.Name
	if i.Entry.Room.Emoji != "" {
		name = i.Entry.Room.Emoji + " " + name
	}
	if i.Entry.Result.Current > 0 {
		name += fmt.Sprintf(" 🔥 %d", i.Entry.Result.Current)
	}
	return name
}

func (i Item) Description() string {
	switch i.Entry.Result.Last {
	case streaks.LastTidy:
		return fmt.Sprintf("last: tidy | best streak %d", i.Entry.Result.Best)
	case streaks.LastNotTidy:
		return fmt.Sprintf("last: not tidy | best streak %d", i.Entry.Result.Best)
	default:
		return "no check-ins yet"
	}
}

func (i Item) FilterValue() string { return i.Entry.Room.Name }

type KeyMap struct {
	Checkin key.Binding
	Add     key.Binding
	Archive key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Checkin: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check in"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add room"),
		),
		Archive: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "archive"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []Entry, width, height int) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Rooms"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is handled globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Checkin, keys.Add, keys.Archive}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Checkin, keys.Add, keys.Archive}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetEntries(entries []Entry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Checkin):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CheckinMsg{Room: i.Entry.Room} }
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddRoomMsg{} }
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ArchiveRoomMsg{Room: i.Entry.Room} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No rooms yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
