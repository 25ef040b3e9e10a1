package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"vibe/internal/logging"
)

const frameInterval = time.Second / 60

// requestFrame schedules the next display frame when the list has deferred
// work. At most one frame is in flight.
func (m *Model) requestFrame() tea.Cmd {
	if m.framePending || m.queue.Len() == 0 || m.width <= 0 {
		return nil
	}
	m.framePending = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// commitFrame lays out the mounted blocks, then runs the work deferred until
// after that commit.
func (m *Model) commitFrame() {
	laidOut := m.tree.Layout(m.width)
	ran := m.queue.Flush()
	m.syncScroll()
	if m.logger.Enabled(logging.Debug) {
		m.logger.Debug("frame",
			logging.F("laid_out", laidOut),
			logging.F("tasks", ran),
			logging.F("window", m.list.Range().String()),
			logging.F("total", m.list.TotalHeight()),
		)
	}
}
