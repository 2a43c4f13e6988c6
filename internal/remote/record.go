// Package remote defines the task-record service boundary: the wire record
// shape, the client interfaces the store depends on, and the mapping
// between remote records and the internal task model.
package remote

import (
	"errors"
	"fmt"
	"time"

	"github.com/mulino/flowstate/internal/task"
)

// Mapping errors.
var (
	ErrMissingID    = errors.New("record has no identifier")
	ErrMissingTitle = errors.New("record has no title")
	ErrMissingStart = errors.New("record has no start time")
)

// Defaults applied to malformed or partial records at the load boundary.
const (
	defaultDurationMinutes = 30
	defaultColor           = "#3b82f6"
)

// Record is the wire shape of a task as the remote service stores it.
// Timestamps travel as ISO-8601 strings; the first tag stands in for the
// category when the service does not store one separately.
type Record struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	TagNames    []string `json:"tag_names,omitempty"`
	IsCompleted bool     `json:"is_completed"`
	IsTemplate  bool     `json:"is_template,omitempty"`
	Color       string   `json:"color,omitempty"`
	Recurrence  string   `json:"recurrence,omitempty"`
}

// TagRecord is the wire shape of a tag.
type TagRecord struct {
	ID          string `json:"_id,omitempty"`
	Email       string `json:"email"`
	TagName     string `json:"tag_name"`
	Description string `json:"tag_description,omitempty"`
}

// MapRecord converts a remote record into the internal task model. The
// mapping is total: every field either validates or falls back to a
// documented default, so malformed records are rejected or repaired here
// rather than propagating partial values into the store.
//
// Defaulting rules:
//   - id, title, start_time: required, record rejected without them
//   - duration: taken from the duration field; else derived from
//     end_time - start_time; else 30 minutes
//   - category: the category field if valid; else the first tag that names
//     a valid category; else work. Category names are then stripped from
//     the tag list so only user tags remain on the task
//   - color: defaulted to the standard task blue
//   - recurrence: defaulted to none; unknown values rejected
func MapRecord(r Record) (*task.Task, error) {
	if r.ID == "" {
		return nil, ErrMissingID
	}
	if r.Title == "" {
		return nil, fmt.Errorf("record %s: %w", r.ID, ErrMissingTitle)
	}
	if r.StartTime == "" {
		return nil, fmt.Errorf("record %s: %w", r.ID, ErrMissingStart)
	}

	start, err := parseTimestamp(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("record %s: parsing start time: %w", r.ID, err)
	}

	duration := r.Duration
	if duration <= 0 && r.EndTime != "" {
		if end, err := parseTimestamp(r.EndTime); err == nil && end.After(start) {
			duration = int(end.Sub(start).Minutes())
		}
	}
	if duration <= 0 {
		duration = defaultDurationMinutes
	}

	category := mapCategory(r)

	color := r.Color
	if color == "" {
		color = defaultColor
	}

	recurrence := task.RecurrenceNone
	if r.Recurrence != "" {
		recurrence = task.Recurrence(r.Recurrence)
		if !recurrence.Valid() {
			return nil, fmt.Errorf("record %s: %w: %q", r.ID, task.ErrInvalidRecurrence, r.Recurrence)
		}
	}

	return &task.Task{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Start:           start.In(time.Local),
		DurationMinutes: duration,
		Category:        category,
		TagNames:        userTags(r.TagNames),
		Color:           color,
		Completed:       r.IsCompleted,
		Recurrence:      recurrence,
		IsTemplate:      r.IsTemplate,
	}, nil
}

// mapCategory resolves the category from the record's category field or,
// failing that, from the first tag naming a valid category.
func mapCategory(r Record) task.Category {
	if c := task.Category(r.Category); c.Valid() {
		return c
	}
	for _, name := range r.TagNames {
		if c := task.Category(name); c.Valid() {
			return c
		}
	}
	return task.CategoryWork
}

// ToRecord converts an internal task into the wire shape for a create
// call. End time is derived, never stored locally. The current category
// leads the wire tag list; stale category names from earlier assignments
// never survive the trip out.
func ToRecord(t *task.Task) Record {
	tags := append([]string{string(t.Category)}, userTags(t.TagNames)...)
	rec := Record{
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		StartTime:   t.Start.Format(time.RFC3339),
		EndTime:     t.End().Format(time.RFC3339),
		Duration:    t.DurationMinutes,
		TagNames:    tags,
		IsCompleted: t.Completed,
		IsTemplate:  t.IsTemplate,
		Color:       t.Color,
	}
	if t.Recurrence != "" && t.Recurrence != task.RecurrenceNone {
		rec.Recurrence = string(t.Recurrence)
	}
	return rec
}

// userTags strips category names from a wire tag list, leaving only the
// user's own tags. The category travels as the leading tag on the wire but
// is its own field on the task.
func userTags(names []string) []string {
	var out []string
	for _, n := range names {
		if task.Category(n).Valid() {
			continue
		}
		out = append(out, n)
	}
	return out
}

// parseTimestamp accepts RFC 3339 with or without an explicit offset.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
