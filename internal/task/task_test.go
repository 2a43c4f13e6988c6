package task

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		title    string
		start    time.Time
		duration int
		category Category
		wantErr  error
	}{
		{name: "valid", title: "Standup", start: start, duration: 30, category: CategoryWork},
		{name: "empty title", title: "", start: start, duration: 30, category: CategoryWork, wantErr: ErrEmptyTitle},
		{name: "whitespace title", title: "   ", start: start, duration: 30, category: CategoryWork, wantErr: ErrEmptyTitle},
		{name: "zero duration", title: "Standup", start: start, duration: 0, category: CategoryWork, wantErr: ErrInvalidDuration},
		{name: "negative duration", title: "Standup", start: start, duration: -15, category: CategoryWork, wantErr: ErrInvalidDuration},
		{name: "zero start", title: "Standup", duration: 30, category: CategoryWork, wantErr: ErrZeroStart},
		{name: "bad category", title: "Standup", start: start, duration: 30, category: "chores", wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.title, tt.start, tt.duration, tt.category)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !IsProvisionalID(got.ID) {
				t.Errorf("New() id = %q, want provisional", got.ID)
			}
			if got.Color != tt.category.DefaultColor() {
				t.Errorf("New() color = %q, want %q", got.Color, tt.category.DefaultColor())
			}
			if got.Recurrence != RecurrenceNone {
				t.Errorf("New() recurrence = %q, want none", got.Recurrence)
			}
		})
	}
}

func TestEndDerivedFromDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tk, err := New("Standup", start, 45, CategoryWork)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := start.Add(45 * time.Minute)
	if !tk.End().Equal(want) {
		t.Errorf("End() = %v, want %v", tk.End(), want)
	}

	// End tracks the duration field, not a stored value.
	tk.DurationMinutes = 120
	want = start.Add(120 * time.Minute)
	if !tk.End().Equal(want) {
		t.Errorf("End() after duration change = %v, want %v", tk.End(), want)
	}
}

func TestMatchesLabel(t *testing.T) {
	tk := &Task{Category: CategoryWork, TagNames: []string{"urgent", "standup"}}

	tests := []struct {
		label string
		want  bool
	}{
		{label: "work", want: true},    // matches category
		{label: "urgent", want: true},  // matches tag
		{label: "school", want: false}, // neither
		{label: "", want: false},
	}

	for _, tt := range tests {
		if got := tk.MatchesLabel(tt.label); got != tt.want {
			t.Errorf("MatchesLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestOnDay(t *testing.T) {
	start := time.Date(2025, 3, 10, 23, 30, 0, 0, time.Local)
	tk := &Task{Start: start, DurationMinutes: 60}

	if !tk.OnDay(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)) {
		t.Error("OnDay() = false for the task's own start day")
	}
	// Day membership follows the start, even when the task crosses midnight.
	if tk.OnDay(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)) {
		t.Error("OnDay() = true for the following day")
	}
}

func TestProvisionalIDs(t *testing.T) {
	a := NewProvisionalID()
	b := NewProvisionalID()
	if a == b {
		t.Errorf("NewProvisionalID() produced duplicate %q", a)
	}
	if !IsProvisionalID(a) {
		t.Errorf("IsProvisionalID(%q) = false", a)
	}
	if IsProvisionalID("66a1f2") {
		t.Error("IsProvisionalID() = true for a durable id")
	}
}

func TestTemplateInstantiate(t *testing.T) {
	tpl := Template{ID: "template-deep", Title: "Deep Work", DurationMinutes: 120, Category: CategoryWork}
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local) // Wednesday

	got := tpl.Instantiate(start)
	if got.Title != "Deep Work" || got.DurationMinutes != 120 || got.Category != CategoryWork {
		t.Errorf("Instantiate() = %+v, want template fields carried over", got)
	}
	if !got.Start.Equal(start) {
		t.Errorf("Instantiate() start = %v, want %v", got.Start, start)
	}
	if got.Color != CategoryWork.DefaultColor() {
		t.Errorf("Instantiate() color = %q, want category default", got.Color)
	}
	if !IsProvisionalID(got.ID) {
		t.Errorf("Instantiate() id = %q, want provisional", got.ID)
	}

	// Instantiating twice never reuses an id.
	if other := tpl.Instantiate(start); other.ID == got.ID {
		t.Error("Instantiate() reused a provisional id")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "work", want: CategoryWork},
		{input: "School", want: CategorySchool},
		{input: " hobbies ", want: CategoryHobbies},
		{input: "deep", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
