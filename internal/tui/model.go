package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/clarahq/clara/internal/insights"
	"github.com/clarahq/clara/internal/ledger"
	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/registry"
	"github.com/clarahq/clara/internal/storage"
	"github.com/clarahq/clara/internal/streaks"
	"github.com/clarahq/clara/internal/tui/components/roomlist"
)

type SessionState int

const (
	StateRooms SessionState = iota
	StateInsights
	StateCheckinForm
	StateAddRoom
	StateConfirmArchive
)

type CheckinFormModel struct {
	IsTidy bool
	Reason string
}

type RoomFormModel struct {
	Name  string
	Emoji string
}

type Model struct {
	store    storage.Provider
	registry *registry.Registry
	ledger   *ledger.Ledger

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	roomList      roomlist.Model

	form        *huh.Form
	checkinForm *CheckinFormModel
	roomForm    *RoomFormModel
	checkinRoom *models.Room
	archiveRoom *models.Room

	nudges   []string
	reasons  []insights.ReasonCount
	stats    streaks.DashboardStats
	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, reg *registry.Registry, led *ledger.Ledger) Model {
	m := Model{
		store:    store,
		registry: reg,
		ledger:   led,
		state:    StateRooms,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		roomList: roomlist.New(nil, 0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads rooms, streaks, nudges, and dashboard stats from the
// store. Errors surface in the footer rather than crashing the session.
func (m *Model) refresh() {
	rooms, err := m.store.GetActiveRooms()
	if err != nil {
		m.errMsg = "⚠ " + err.Error()
		return
	}

	today := time.Now().Format("2006-01-02")
	var entries []roomlist.Entry
	var results []streaks.RoomResult
	var summaries []insights.RoomSummary
	var allCheckins []models.Checkin

	for _, room := range rooms {
		checkins, err := m.store.GetCheckinsForRoom(room.ID, nil)
		if err != nil {
			m.errMsg = "⚠ " + err.Error()
			return
		}
		result := streaks.Compute(checkins)
		entries = append(entries, roomlist.Entry{Room: room, Result: result})
		results = append(results, streaks.RoomResult{RoomID: room.ID, Result: result})
		summaries = append(summaries, insights.SummarizeRoom(room.Name, checkins, today))
		allCheckins = append(allCheckins, checkins...)
	}

	m.roomList.SetEntries(entries)
	m.nudges = insights.GenerateNudges(summaries)
	m.reasons = insights.SummarizeReasons(allCheckins)
	m.stats = streaks.ComputeDashboard(results, allCheckins, today)
	m.errMsg = ""
}

func (m *Model) startCheckinForm(room models.Room) {
	m.checkinRoom = &room
	m.checkinForm = &CheckinFormModel{IsTidy: true}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Is "+room.Name+" tidy?").
				Affirmative("Tidy").
				Negative("Not tidy").
				Value(&m.checkinForm.IsTidy),
			huh.NewInput().
				Title("What's in the way? (skipped for tidy rooms)").
				Value(&m.checkinForm.Reason),
		),
	)
	m.previousState = m.state
	m.state = StateCheckinForm
}

func (m *Model) startAddRoomForm() {
	m.roomForm = &RoomFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Room name").
				Value(&m.roomForm.Name),
			huh.NewInput().
				Title("Emoji (optional)").
				Value(&m.roomForm.Emoji),
		),
	)
	m.previousState = m.state
	m.state = StateAddRoom
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateRooms {
		keys = append(keys, m.keys.Checkin, m.keys.Add, m.keys.Archive)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	if m.state == StateRooms {
		actions = []key.Binding{m.keys.Checkin, m.keys.Add, m.keys.Archive}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
