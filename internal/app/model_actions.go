package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"vibe/internal/logging"
	"vibe/internal/markdown"
	"vibe/internal/types"
)

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	page := max(1, m.scroll.height-1)
	switch m.keybindings.Command(msg) {
	case KeyCommandQuit:
		return tea.Quit
	case KeyCommandSubmit:
		m.submit()
	case KeyCommandScrollUp:
		m.scrollBy(-1)
	case KeyCommandScrollDown:
		m.scrollBy(1)
	case KeyCommandPageUp:
		m.scrollBy(-page)
	case KeyCommandPageDown:
		m.scrollBy(page)
	case KeyCommandTop:
		if m.scroll.top() {
			m.notifyViewport()
		}
	case KeyCommandBottom:
		if m.scroll.bottom() {
			m.notifyViewport()
		}
	case KeyCommandClear:
		m.clearTranscript()
		m.setStatusInfo("transcript cleared")
	case KeyCommandCopyLast:
		m.copyLastMessage()
	case KeyCommandToggleTheme:
		return tea.Batch(m.toggleTheme(), m.requestFrame())
	case KeyCommandToggleFollow:
		return tea.Batch(m.toggleFollow(), m.requestFrame())
	case KeyCommandToggleTimestamps:
		m.toggleTimestamps()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return m.requestFrame()
}

// submit appends the compose box content as a user message. "/clear" and
// "/demo N" are handled locally.
func (m *Model) submit() {
	text := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if text == "" {
		return
	}
	switch fields := strings.Fields(text); fields[0] {
	case "/clear":
		m.clearTranscript()
		m.setStatusInfo("transcript cleared")
		return
	case "/demo":
		count := 100
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				m.setStatusError("usage: /demo N")
				return
			}
			count = n
		}
		demo := DemoMessages(count, m.now())
		for i := range demo {
			demo[i].ID = ""
		}
		m.appendMessages(demo)
		m.setStatusInfo(fmt.Sprintf("added %d demo messages", count))
		return
	}
	m.appendMessages([]types.Message{{
		Role:      types.MessageRoleUser,
		Text:      text,
		CreatedAt: m.now(),
	}})
}

func (m *Model) copyLastMessage() {
	if len(m.messages) == 0 {
		m.setStatusError("nothing to copy")
		return
	}
	last := m.messages[len(m.messages)-1]
	method, err := copyTextToClipboard(last.Text)
	if err != nil {
		m.logger.Warn("clipboard_copy_failed", logging.F("error", err))
		m.setStatusError("copy failed: " + err.Error())
		return
	}
	m.setStatusInfo("copied last message (" + method.String() + " clipboard)")
}

// restyle drops committed layout so every mounted block is measured again
// after the next frame.
func (m *Model) restyle() {
	m.tree.Invalidate()
	m.list.Remeasure()
}

func (m *Model) toggleTheme() tea.Cmd {
	dark := !markdown.Dark()
	markdown.SetDark(dark)
	m.restyle()
	m.setStatusInfo("theme: " + m.theme())
	return m.saveStateCmd()
}

func (m *Model) toggleFollow() tea.Cmd {
	if m.scroll.follow {
		m.scroll.follow = false
		m.setStatusInfo("follow off")
	} else if m.scroll.bottom() {
		m.notifyViewport()
	}
	if m.scroll.follow {
		m.setStatusInfo("follow on")
	}
	return m.saveStateCmd()
}

func (m *Model) toggleTimestamps() {
	m.timestamps = !m.timestamps
	m.renderer.SetTimestamps(m.timestamps)
	m.restyle()
}

func (m *Model) theme() string {
	if markdown.Dark() {
		return "dark"
	}
	return "light"
}

func (m *Model) uiState() *types.UIState {
	state := &types.UIState{
		Theme:     m.theme(),
		UpdatedAt: m.now().UTC(),
	}
	state.SetFollow(m.scroll.follow)
	return state
}

func (m *Model) saveStateCmd() tea.Cmd {
	if m.stateStore == nil {
		return nil
	}
	stateStore := m.stateStore
	state := m.uiState()
	return func() tea.Msg {
		return stateSavedMsg{err: stateStore.Save(context.Background(), state)}
	}
}
