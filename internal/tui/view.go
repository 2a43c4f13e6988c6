package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mulino/flowstate/internal/task"
)

const timeGutterWidth = 6

// View renders the calendar grid.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.width < timeGutterWidth+7*8 {
		return "Terminal too small"
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderDayHeaders())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString(m.renderFooter())
	return b.String()
}

// colWidth is the width of one day column for the current terminal size.
func (m Model) colWidth() int {
	w := (m.width - timeGutterWidth) / 7
	if w < 8 {
		w = 8
	}
	if w > defaultColWidth+6 {
		w = defaultColWidth + 6
	}
	return w
}

func (m Model) renderTitle() string {
	sunday := m.weekStart.AddDate(0, 0, 6)
	title := fmt.Sprintf(" FLOWSTATE  %s - %s",
		m.weekStart.Format("Jan 2"), sunday.Format("Jan 2, 2006"))
	right := fmt.Sprintf("filter: %s ", m.filt)
	if m.loading {
		right = "loading... " + right
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.TitleStyle.Render(title) + strings.Repeat(" ", gap) + m.styles.HelpText.Render(right)
}

func (m Model) renderDayHeaders() string {
	colWidth := m.colWidth()
	today := m.now()

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeGutterWidth))
	for day := 0; day < 7; day++ {
		date := m.dayDate(day)
		label := date.Format("Mon 2")
		style := m.styles.DayHeader
		if sameDay(date, today) {
			style = m.styles.DayHeaderToday
		}
		b.WriteString(style.Width(colWidth).Render(label))
	}
	return b.String()
}

func (m Model) renderGrid() string {
	slots := m.slots()
	colWidth := m.colWidth()
	visible := m.visibleRows()
	ghost := m.ghostForView()

	var b strings.Builder
	for i := 0; i < visible; i++ {
		row := m.scroll + i
		if row >= len(slots) {
			break
		}

		gutter := "     "
		if slots[row].Minute == 0 {
			gutter = fmt.Sprintf("%02d:00", slots[row].Hour)
		}
		b.WriteString(m.styles.TimeColumn.Width(timeGutterWidth).Render(gutter))

		for day := 0; day < 7; day++ {
			b.WriteString(m.renderCell(Position{Day: day, Row: row}, colWidth, ghost))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ghostForView returns the dragged task when one should be drawn at the
// cursor.
func (m Model) ghostForView() *task.Task {
	if m.mode != ModeMove {
		return nil
	}
	return m.drag.Ghost()
}

func (m Model) renderCell(p Position, colWidth int, ghost *task.Task) string {
	underCursor := p == m.cursor

	// The dragged entity paints over whatever is under the cursor.
	if ghost != nil && underCursor {
		return m.styles.GhostCell.Render(fitCell("▸ "+ghost.Title, colWidth))
	}

	t := m.taskAt(p)
	if t == nil {
		text := fitCell("·", colWidth)
		if underCursor {
			return m.styles.CursorCell.Render(text)
		}
		return m.styles.EmptyCell.Render(text)
	}

	label := " "
	if sameMinute(t.Start, m.timeAt(p)) {
		mark := ""
		if t.Completed {
			mark = "✓ "
		}
		label = mark + t.Title
	}

	if underCursor {
		return m.styles.CursorCell.Render(fitCell(label, colWidth))
	}
	return m.styles.TaskStyle(t).Render(fitCell(label, colWidth))
}

func (m Model) renderFooter() string {
	switch m.mode {
	case ModePrompt:
		return m.styles.PromptBox.Render("add  "+m.prompt.View()) + "\n"
	case ModeConfirm:
		msg := "Delete task?"
		if m.confirmTask != nil {
			msg = fmt.Sprintf("Delete %q? (y/n)", m.confirmTask.Title)
		}
		return m.styles.StatusBar.Width(m.width).Render(" " + msg)
	case ModeMove:
		return m.styles.StatusBar.Width(m.width).Render(" moving: hjkl position, enter drop, esc cancel")
	}

	status := m.statusMsg
	if status != "" {
		return m.styles.StatusBar.Width(m.width).Render(" " + m.styles.StatusText.Render(status))
	}
	help := " enter move · n add · 1-3 templates · space done · +/- resize · x delete · f filter · y yank · q quit"
	return m.styles.HelpText.Render(help)
}

// fitCell truncates or pads a cell label to an exact width.
func fitCell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}
