package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateRooms:
		content = docStyle.Render(m.roomList.View())
	case StateInsights:
		content = docStyle.Render(m.viewInsights())
	case StateCheckinForm, StateAddRoom:
		content = m.form.View()
	case StateConfirmArchive:
		content = m.viewConfirmArchive()
	}

	footer := m.help.View(m)
	if m.errMsg != "" {
		footer = m.errMsg + "\n" + footer
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		footer,
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Rooms", "Insights"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewInsights() string {
	lines := []string{
		statLabelStyle.Render("This week"),
		fmt.Sprintf("  Active rooms: %d", m.stats.ActiveRooms),
		fmt.Sprintf("  Combined streaks: %d current / %d best", m.stats.TotalCurrent, m.stats.TotalBest),
		fmt.Sprintf("  Completion rate (7d): %d%%", m.stats.CompletionRate),
		"",
		statLabelStyle.Render("Nudges"),
	}
	if len(m.nudges) == 0 {
		lines = append(lines, "  Nothing to nudge about yet.")
	}
	for _, nudge := range m.nudges {
		lines = append(lines, nudgeStyle.Render("  • "+nudge))
	}

	if len(m.reasons) > 0 {
		lines = append(lines, "", statLabelStyle.Render("Common blockers"))
		for i, rc := range m.reasons {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %s (%d)", rc.Reason, rc.Count))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConfirmArchive() string {
	name := ""
	if m.archiveRoom != nil {
		name = m.archiveRoom.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Archive %s? Its history is kept.", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
