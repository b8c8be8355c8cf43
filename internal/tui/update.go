package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/clarahq/clara/internal/tui/components/roomlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.roomList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case roomlist.CheckinMsg:
		m.startCheckinForm(msg.Room)
		return m, m.form.Init()

	case roomlist.AddRoomMsg:
		m.startAddRoomForm()
		return m, m.form.Init()

	case roomlist.ArchiveRoomMsg:
		room := msg.Room
		m.archiveRoom = &room
		m.previousState = m.state
		m.state = StateConfirmArchive
		return m, nil
	}

	switch m.state {
	case StateCheckinForm, StateAddRoom:
		return m.updateForm(msg)
	case StateConfirmArchive:
		return m.updateConfirmArchive(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = (m.state + 1) % 2
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = (m.state - 1 + 2) % 2
			return m, nil
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	if m.state == StateRooms {
		var cmd tea.Cmd
		m.roomList, cmd = m.roomList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateCheckinForm:
			m.submitCheckin()
		case StateAddRoom:
			m.submitAddRoom()
		}
		m.state = m.previousState
		m.form = nil
		m.refresh()
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitCheckin() {
	if m.checkinRoom == nil || m.checkinForm == nil {
		return
	}
	today := time.Now().Format("2006-01-02")
	_, err := m.ledger.AddCheckin(m.checkinRoom.ID, today, m.checkinForm.IsTidy, m.checkinForm.Reason)
	if err != nil {
		m.errMsg = "⚠ " + err.Error()
	}
	m.checkinRoom = nil
	m.checkinForm = nil
}

func (m *Model) submitAddRoom() {
	if m.roomForm == nil {
		return
	}
	if _, err := m.registry.AddRoom(m.roomForm.Name, m.roomForm.Emoji); err != nil {
		m.errMsg = "⚠ " + err.Error()
	}
	m.roomForm = nil
}

func (m Model) updateConfirmArchive(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		if m.archiveRoom != nil {
			if err := m.registry.ArchiveRoom(m.archiveRoom.ID); err != nil {
				m.errMsg = "⚠ " + err.Error()
			}
		}
		m.archiveRoom = nil
		m.state = m.previousState
		m.refresh()
	case "n", "esc":
		m.archiveRoom = nil
		m.state = m.previousState
	}
	return m, nil
}
