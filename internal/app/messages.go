package app

import "vibe/internal/types"

type frameMsg struct{}

type stateSavedMsg struct {
	err error
}

// AppendMsg adds messages to the transcript from outside the program, e.g.
// via tea.Program.Send.
type AppendMsg struct {
	Messages []types.Message
}
