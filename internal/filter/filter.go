// Package filter derives the visible task subset for the active view. It
// never mutates the store; every projection is recomputed from the tasks
// it is handed.
package filter

import (
	"time"

	"github.com/mulino/flowstate/internal/task"
)

// All matches every task regardless of category or tags.
const All = "all"

// Filter is the active category filter: All or one label. A non-All
// filter matches tasks whose category equals the label or whose tag set
// contains it.
type Filter string

// Matches returns true if the task is visible under the filter.
func (f Filter) Matches(t *task.Task) bool {
	if f == "" || f == All {
		return true
	}
	return t.MatchesLabel(string(f))
}

// Apply returns the tasks visible under the filter, preserving order.
func (f Filter) Apply(tasks []*task.Task) []*task.Task {
	if f == "" || f == All {
		return tasks
	}
	var out []*task.Task
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// ForDay restricts tasks to those starting on the given local calendar
// day, preserving order.
func ForDay(tasks []*task.Task, date time.Time) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if t.OnDay(date) {
			out = append(out, t)
		}
	}
	return out
}

// Next cycles the filter through All and the fixed categories, for the
// view's filter toggle.
func (f Filter) Next() Filter {
	cats := task.Categories()
	for i, c := range cats {
		if f == Filter(c) {
			if i == len(cats)-1 {
				return All
			}
			return Filter(cats[i+1])
		}
	}
	return Filter(cats[0])
}
