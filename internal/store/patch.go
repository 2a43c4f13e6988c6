package store

import (
	"strings"
	"time"

	"github.com/mulino/flowstate/internal/remote"
	"github.com/mulino/flowstate/internal/task"
)

// Patch is a partial task update. Nil fields are left untouched; a non-nil
// TagNames replaces the whole tag set.
type Patch struct {
	Title           *string
	Description     *string
	Start           *time.Time
	DurationMinutes *int
	Category        *task.Category
	TagNames        []string
	Color           *string
	Completed       *bool
	Recurrence      *task.Recurrence
}

// validate rejects patches that would put a task into an invalid state,
// before any local mutation happens.
func (p Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return task.ErrEmptyTitle
	}
	if p.DurationMinutes != nil && *p.DurationMinutes <= 0 {
		return task.ErrInvalidDuration
	}
	if p.Start != nil && p.Start.IsZero() {
		return task.ErrZeroStart
	}
	if p.Category != nil && !p.Category.Valid() {
		return task.ErrInvalidCategory
	}
	if p.Recurrence != nil && !p.Recurrence.Valid() {
		return task.ErrInvalidRecurrence
	}
	return nil
}

// apply merges the patch into the task. Duration and start are the
// authoritative time fields; the end time follows via Task.End.
func (p Patch) apply(t *task.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Start != nil {
		t.Start = *p.Start
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.TagNames != nil {
		t.TagNames = append([]string(nil), p.TagNames...)
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
}

// remoteFields translates the patched fields to remote names, using the
// already-merged task for derived values. Only fields the patch touched
// appear in the map.
func (p Patch) remoteFields(t *task.Task) map[string]any {
	fields := make(map[string]any)
	if p.Title != nil {
		fields["title"] = t.Title
	}
	if p.Description != nil {
		fields["description"] = t.Description
	}
	if p.Start != nil || p.DurationMinutes != nil {
		fields["start_time"] = t.Start.Format(time.RFC3339)
		fields["end_time"] = t.End().Format(time.RFC3339)
		fields["duration"] = t.DurationMinutes
	}
	if p.Category != nil {
		fields["category"] = string(t.Category)
	}
	if p.Category != nil || p.TagNames != nil {
		fields["tag_names"] = remote.ToRecord(t).TagNames
	}
	if p.Color != nil {
		fields["color"] = t.Color
	}
	if p.Completed != nil {
		fields["is_completed"] = t.Completed
	}
	if p.Recurrence != nil {
		fields["recurrence"] = string(t.Recurrence)
	}
	return fields
}
