// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mulino/flowstate/internal/store"
)

// ScheduleLoadedMsg is sent when the schedule has been pulled from the
// backend.
type ScheduleLoadedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadSchedule pulls the full schedule from the backend. The store keeps
// its previous snapshot when the pull fails, so the grid stays usable.
func LoadSchedule(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		if err := st.Load(context.Background()); err != nil {
			return ErrMsg{Err: err}
		}
		return ScheduleLoadedMsg{}
	}
}

// Status emits a transient status line message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Msg: msg}
	}
}
