package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mulino/flowstate/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case commands.ScheduleLoadedMsg:
		m.loading = false
		m.err = nil
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsg:
		m.setStatus(msg.Msg)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if m.now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

// ensureCursorVisible adjusts the scroll offset so the cursor row stays on
// screen.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor.Row < m.scroll {
		m.scroll = m.cursor.Row
	}
	if m.cursor.Row >= m.scroll+visible {
		m.scroll = m.cursor.Row - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// visibleRows is how many grid rows fit in the terminal, after the header
// and footer chrome.
func (m Model) visibleRows() int {
	const chrome = 5
	rows := m.height - chrome
	total := len(m.slots())
	if rows > total {
		rows = total
	}
	return rows
}
