package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mulino/flowstate/internal/task"
)

// Stats holds aggregated minutes for a set of tasks.
type Stats struct {
	Minutes     map[task.Category]int
	TotalBlocks int
	DoneBlocks  int
}

// CollectStats aggregates scheduled minutes per category.
func CollectStats(tasks []*task.Task) Stats {
	s := Stats{Minutes: map[task.Category]int{}}
	for _, t := range tasks {
		s.Minutes[t.Category] += t.DurationMinutes
		s.TotalBlocks++
		if t.Completed {
			s.DoneBlocks++
		}
	}
	return s
}

// TotalMinutes returns the sum across all categories.
func (s Stats) TotalMinutes() int {
	total := 0
	for _, m := range s.Minutes {
		total += m
	}
	return total
}

// formatMinutes renders a minute count as "1h30m" style text.
func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

// formatTaskLine renders one task as a list row.
func formatTaskLine(t *task.Task) string {
	mark := "○"
	if t.Completed {
		mark = formatDone("✓")
	}

	span := fmt.Sprintf("%s-%s", t.Start.Format("15:04"), t.End().Format("15:04"))
	label := formatCategory(t.Category, fmt.Sprintf("[%s]", t.Category))

	line := fmt.Sprintf("  %s %s %s %s %s", mark, shortID(t.ID), span, label, t.Title)
	if len(t.TagNames) > 0 {
		line += " " + formatMuted("#"+strings.Join(t.TagNames, " #"))
	}
	return line
}

// shortID abbreviates an id for display. Provisional ids are shown in
// full so the user can tell the write has not landed yet.
func shortID(id string) string {
	if task.IsProvisionalID(id) || len(id) <= 8 {
		return formatMuted(id)
	}
	return formatMuted(id[:8])
}

// formatDayHeader renders a date as a section header.
func formatDayHeader(date time.Time) string {
	return formatHeader(fmt.Sprintf("=== %s %s ===", date.Format("Monday"), date.Format("2006-01-02")))
}
