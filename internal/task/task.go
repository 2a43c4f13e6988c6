// Package task defines the core domain types for flowstate.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidDuration   = errors.New("duration must be greater than zero")
	ErrInvalidCategory   = errors.New("category must be 'work', 'school' or 'hobbies'")
	ErrZeroStart         = errors.New("start time is required")
	ErrInvalidRecurrence = errors.New("recurrence must be 'none', 'daily', 'weekly' or 'monthly'")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Category is the fixed classification of a task. Unlike tags it is a
// closed set and carries a default display color.
type Category string

const (
	CategoryWork    Category = "work"
	CategorySchool  Category = "school"
	CategoryHobbies Category = "hobbies"
)

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategorySchool, CategoryHobbies:
		return true
	default:
		return false
	}
}

// DefaultColor returns the display color associated with the category.
func (c Category) DefaultColor() string {
	switch c {
	case CategorySchool:
		return "#8b5cf6"
	case CategoryHobbies:
		return "#f97316"
	default:
		return "#3b82f6"
	}
}

// ParseCategory parses a category string.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategorySchool, CategoryHobbies}
}

// Recurrence describes how a task repeats. Expansion into concrete
// occurrences is not handled here; the value is stored and round-tripped.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid returns true if the recurrence is a known value.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// Task represents a scheduled unit of work on the calendar grid.
//
// DurationMinutes is the authoritative length field: the end time is always
// derived from it via End(), so start+duration==end holds after every
// mutation by construction.
type Task struct {
	ID              string
	Title           string
	Description     string
	Start           time.Time
	DurationMinutes int
	Category        Category
	TagNames        []string
	Color           string
	Completed       bool
	Recurrence      Recurrence
	IsTemplate      bool
	CreatedAt       time.Time
}

// New creates a Task with validation. The id is provisional until the
// record has been persisted remotely and reloaded.
func New(title string, start time.Time, durationMinutes int, category Category) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if start.IsZero() {
		return nil, ErrZeroStart
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	return &Task{
		ID:              NewProvisionalID(),
		Title:           title,
		Start:           start,
		DurationMinutes: durationMinutes,
		Category:        category,
		Color:           category.DefaultColor(),
		Recurrence:      RecurrenceNone,
		CreatedAt:       time.Now(),
	}, nil
}

// End returns the task end time, derived from start and duration.
func (t *Task) End() time.Time {
	return t.Start.Add(time.Duration(t.DurationMinutes) * time.Minute)
}

// HasTag returns true if name is in the task's tag set.
func (t *Task) HasTag(name string) bool {
	for _, n := range t.TagNames {
		if n == name {
			return true
		}
	}
	return false
}

// MatchesLabel returns true if label equals the task category or appears in
// the tag set. A category is treated as a privileged default tag, so the
// two namespaces are matched as a union.
func (t *Task) MatchesLabel(label string) bool {
	return string(t.Category) == label || t.HasTag(label)
}

// OnDay returns true if the task starts on the same local calendar day.
func (t *Task) OnDay(date time.Time) bool {
	y1, m1, d1 := t.Start.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

const provisionalPrefix = "tmp-"

// NewProvisionalID returns a locally unique placeholder id for a task that
// has not been persisted yet. Reconciliation with the durable id happens on
// the next full load.
func NewProvisionalID() string {
	return provisionalPrefix + uuid.NewString()
}

// IsProvisionalID reports whether the id was assigned locally.
func IsProvisionalID(id string) bool {
	return strings.HasPrefix(id, provisionalPrefix)
}
