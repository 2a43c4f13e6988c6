package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/task"
)

// ErrEmptyQuickAdd is returned when the prompt input has no title.
var ErrEmptyQuickAdd = errors.New("task needs a title")

// QuickAdd is a parsed prompt entry. Markers may appear anywhere in the
// input: @HH:MM sets the start, +N the duration in minutes, #name adds a
// tag and /category switches the category. Everything else is the title.
type QuickAdd struct {
	Title    string
	Start    time.Time
	Duration int
	Category task.Category
	Tags     []string
}

// ParseQuickAdd parses a prompt entry. base supplies the date and the
// default start time, normally the slot under the cursor.
func ParseQuickAdd(input string, base time.Time) (QuickAdd, error) {
	q := QuickAdd{
		Start:    base,
		Duration: 60,
		Category: task.CategoryWork,
	}

	var title []string
	for _, word := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(word, "@"):
			at, err := dateutil.At(base, strings.TrimPrefix(word, "@"))
			if err != nil {
				return QuickAdd{}, err
			}
			q.Start = at
		case strings.HasPrefix(word, "+"):
			minutes, err := strconv.Atoi(strings.TrimPrefix(word, "+"))
			if err != nil || minutes <= 0 {
				return QuickAdd{}, task.ErrInvalidDuration
			}
			q.Duration = minutes
		case strings.HasPrefix(word, "#") && len(word) > 1:
			q.Tags = append(q.Tags, strings.TrimPrefix(word, "#"))
		case strings.HasPrefix(word, "/"):
			cat, err := task.ParseCategory(strings.TrimPrefix(word, "/"))
			if err != nil {
				return QuickAdd{}, err
			}
			q.Category = cat
		default:
			title = append(title, word)
		}
	}

	q.Title = strings.Join(title, " ")
	if q.Title == "" {
		return QuickAdd{}, ErrEmptyQuickAdd
	}
	return q, nil
}

// Draft builds a task draft from the parsed entry.
func (q QuickAdd) Draft() (*task.Task, error) {
	draft, err := task.New(q.Title, q.Start, q.Duration, q.Category)
	if err != nil {
		return nil, err
	}
	draft.TagNames = q.Tags
	return draft, nil
}
