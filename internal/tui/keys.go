package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/drag"
	"github.com/mulino/flowstate/internal/task"
	"github.com/mulino/flowstate/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		} else {
			m.weekStart = m.weekStart.AddDate(0, 0, -7)
			m.cursor.Day = 6
		}
	case "l", "right":
		if m.cursor.Day < 6 {
			m.cursor.Day++
		} else {
			m.weekStart = m.weekStart.AddDate(0, 0, 7)
			m.cursor.Day = 0
		}
	case "j", "down":
		m.cursor.Row = clampInt(m.cursor.Row+1, 0, len(m.slots())-1)
		m.ensureCursorVisible()
	case "k", "up":
		m.cursor.Row = clampInt(m.cursor.Row-1, 0, len(m.slots())-1)
		m.ensureCursorVisible()
	case "g":
		m.cursor.Row = 0
		m.ensureCursorVisible()
	case "G":
		m.cursor.Row = len(m.slots()) - 1
		m.ensureCursorVisible()
	case "H", "[":
		m.weekStart = m.weekStart.AddDate(0, 0, -7)
	case "L", "]":
		m.weekStart = m.weekStart.AddDate(0, 0, 7)
	case "t":
		now := m.now()
		m.weekStart, _ = dateutil.WeekRange(now)
		m.cursor.Day = weekdayIndex(now)

	// Data
	case "r":
		m.loading = true
		return m, commands.LoadSchedule(m.store)

	// Pick up the task under the cursor
	case "enter", "m":
		t := m.taskAt(m.cursor)
		if t == nil {
			return m, nil
		}
		if err := m.drag.StartTask(0, t, m.pointAt(m.cursor)); err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		m.mode = ModeMove
		LogEvent("MOVE_START", map[string]any{"task": t.ID})

	// Pick up a template
	case "1", "2", "3":
		templates := task.BuiltinTemplates()
		idx := int(msg.String()[0] - '1')
		if idx >= len(templates) {
			return m, nil
		}
		if err := m.drag.StartTemplate(0, templates[idx], m.pointAt(m.cursor)); err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		m.mode = ModeMove
		LogEvent("TEMPLATE_START", map[string]any{"template": templates[idx].ID})

	// Quick add
	case "n", "a":
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, nil

	// Mutations on the task under the cursor
	case " ", "c":
		t := m.taskAt(m.cursor)
		if t == nil {
			return m, nil
		}
		if err := m.store.SetCompleted(ctx, t.ID, !t.Completed); err != nil {
			m.setStatus(err.Error())
		}
	case "+", "=":
		t := m.taskAt(m.cursor)
		if t == nil {
			return m, nil
		}
		if err := m.store.Resize(ctx, t.ID, t.DurationMinutes+m.rowMinutes()); err != nil {
			m.setStatus(err.Error())
		}
	case "-", "_":
		t := m.taskAt(m.cursor)
		if t == nil {
			return m, nil
		}
		if err := m.store.Resize(ctx, t.ID, t.DurationMinutes-m.rowMinutes()); err != nil {
			m.setStatus(err.Error())
		}
	case "x", "d":
		t := m.taskAt(m.cursor)
		if t == nil {
			return m, nil
		}
		m.confirmTask = t
		m.mode = ModeConfirm

	// View controls
	case "f":
		m.filt = m.filt.Next()
	case "y":
		return m.yankDay()
	}

	return m, nil
}

// handleMoveKeys handles keys while a task or template is being dragged.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < 6 {
			m.cursor.Day++
		}
	case "j", "down":
		m.cursor.Row = clampInt(m.cursor.Row+1, 0, len(m.slots())-1)
		m.ensureCursorVisible()
	case "k", "up":
		m.cursor.Row = clampInt(m.cursor.Row-1, 0, len(m.slots())-1)
		m.ensureCursorVisible()

	case "esc", "q":
		m.drag.Cancel()
		m.mode = ModeNormal
		return m, nil

	case "enter", " ":
		target := &drag.DropTarget{Start: m.timeAt(m.cursor)}
		err := m.drag.Drop(context.Background(), target)
		m.mode = ModeNormal
		if err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		LogEvent("DROP", map[string]any{"at": target.Start.Format("2006-01-02 15:04")})
		return m, nil

	default:
		return m, nil
	}

	m.drag.PointerMove(m.pointAt(m.cursor))
	return m, nil
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		t := m.confirmTask
		m.confirmTask = nil
		m.mode = ModeNormal
		if t == nil {
			return m, nil
		}
		if err := m.store.Delete(context.Background(), t.ID); err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		return m, commands.Status(fmt.Sprintf("Deleted %s", t.Title))
	case "n", "esc", "q":
		m.confirmTask = nil
		m.mode = ModeNormal
	}
	return m, nil
}

// handlePromptKeys handles the quick-add prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case "enter":
		input := m.prompt.Value()
		m.mode = ModeNormal
		m.prompt.Blur()

		q, err := ParseQuickAdd(input, m.timeAt(m.cursor))
		if err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		draft, err := q.Draft()
		if err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		created, err := m.store.Create(context.Background(), draft)
		if err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		return m, commands.Status(fmt.Sprintf("Added %s at %s", created.Title, created.Start.Format("Mon 15:04")))

	default:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
}

// yankDay copies the cursor day's schedule to the clipboard.
func (m Model) yankDay() (tea.Model, tea.Cmd) {
	tasks := m.dayTasks(m.cursor.Day)
	if len(tasks) == 0 {
		m.setStatus("Nothing to copy")
		return m, nil
	}

	var b strings.Builder
	b.WriteString(m.dayDate(m.cursor.Day).Format("Monday 2006-01-02\n"))
	for _, t := range tasks {
		fmt.Fprintf(&b, "%s-%s %s [%s]\n",
			t.Start.Format("15:04"), t.End().Format("15:04"), t.Title, t.Category)
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard: %v", err))
		return m, nil
	}
	return m, commands.Status(fmt.Sprintf("Copied %d tasks", len(tasks)))
}
