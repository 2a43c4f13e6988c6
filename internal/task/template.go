package task

import "time"

// Template is an immutable preset used to stamp out new tasks when dragged
// onto the grid. Templates are never scheduled themselves.
type Template struct {
	ID              string
	Title           string
	DurationMinutes int
	Category        Category
	Color           string
	Recurrence      Recurrence
}

// BuiltinTemplates returns the default template palette shown in the
// sidebar, one per category.
func BuiltinTemplates() []Template {
	return []Template{
		{ID: "template-work", Title: "Work Task", DurationMinutes: 60, Category: CategoryWork, Color: CategoryWork.DefaultColor()},
		{ID: "template-school", Title: "School Task", DurationMinutes: 60, Category: CategorySchool, Color: CategorySchool.DefaultColor()},
		{ID: "template-hobby", Title: "Hobby Task", DurationMinutes: 60, Category: CategoryHobbies, Color: CategoryHobbies.DefaultColor()},
	}
}

// Instantiate stamps a new Task draft from the template at the given start
// time. The draft carries a fresh provisional id distinct from any
// persisted task.
func (tpl Template) Instantiate(start time.Time) *Task {
	rec := tpl.Recurrence
	if rec == "" {
		rec = RecurrenceNone
	}
	color := tpl.Color
	if color == "" {
		color = tpl.Category.DefaultColor()
	}
	return &Task{
		ID:              NewProvisionalID(),
		Title:           tpl.Title,
		Start:           start,
		DurationMinutes: tpl.DurationMinutes,
		Category:        tpl.Category,
		Color:           color,
		Recurrence:      rec,
		CreatedAt:       time.Now(),
	}
}
