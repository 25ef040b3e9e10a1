package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

var (
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	followStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *Model) render() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	parts := []string{}
	if h := m.chatHeight(); h > 0 {
		parts = append(parts, m.tree.View(m.scroll.offset, h))
	}
	parts = append(parts, m.statusLine(), m.input.View())
	return strings.Join(parts, "\n")
}

func (m *Model) statusLine() string {
	window := m.list.Range()
	left := fmt.Sprintf(" %d messages", m.list.Len())
	if !window.Empty() {
		left += fmt.Sprintf(" · %d-%d mounted", window.Start, window.End)
	}
	left += fmt.Sprintf(" · %d%%", m.scrollPercent())
	left = runewidth.Truncate(left, m.width, "…")
	follow := ""
	if m.scroll.follow {
		follow = " follow"
	}

	right := m.status
	room := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(follow) - 1
	if room < 0 {
		room = 0
	}
	right = runewidth.Truncate(right, room, "…")
	gap := room - runewidth.StringWidth(right)

	rightStyle := statusStyle
	if m.statusErr {
		rightStyle = statusErrorStyle
	}
	return statusStyle.Render(left) + followStyle.Render(follow) +
		strings.Repeat(" ", gap+1) + rightStyle.Render(right)
}

func (m *Model) scrollPercent() int {
	maxOffset := m.scroll.maxOffset()
	if maxOffset == 0 {
		return 100
	}
	return m.scroll.offset * 100 / maxOffset
}
