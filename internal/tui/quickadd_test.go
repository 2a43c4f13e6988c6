package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/mulino/flowstate/internal/task"
)

func TestParseQuickAdd(t *testing.T) {
	base := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		want    QuickAdd
		wantErr error
	}{
		{
			name:  "title only takes slot defaults",
			input: "Deep work",
			want: QuickAdd{
				Title:    "Deep work",
				Start:    base,
				Duration: 60,
				Category: task.CategoryWork,
			},
		},
		{
			name:  "all markers",
			input: "Read thesis @14:30 +90 /school #research #reading",
			want: QuickAdd{
				Title:    "Read thesis",
				Start:    time.Date(2025, 3, 12, 14, 30, 0, 0, time.Local),
				Duration: 90,
				Category: task.CategorySchool,
				Tags:     []string{"research", "reading"},
			},
		},
		{
			name:  "markers may interleave the title",
			input: "@08:00 Morning +30 run /hobbies",
			want: QuickAdd{
				Title:    "Morning run",
				Start:    time.Date(2025, 3, 12, 8, 0, 0, 0, time.Local),
				Duration: 30,
				Category: task.CategoryHobbies,
			},
		},
		{name: "empty", input: "", wantErr: ErrEmptyQuickAdd},
		{name: "markers without title", input: "@10:00 +60", wantErr: ErrEmptyQuickAdd},
		{name: "bad duration", input: "Task +zero", wantErr: task.ErrInvalidDuration},
		{name: "negative duration", input: "Task +-30", wantErr: task.ErrInvalidDuration},
		{name: "bad category", input: "Task /chores", wantErr: task.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuickAdd(tt.input, base)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.want.Title || !got.Start.Equal(tt.want.Start) ||
				got.Duration != tt.want.Duration || got.Category != tt.want.Category {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if len(got.Tags) != len(tt.want.Tags) {
				t.Errorf("tags = %v, want %v", got.Tags, tt.want.Tags)
			}
		})
	}
}

func TestQuickAddDraft(t *testing.T) {
	base := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

	q, err := ParseQuickAdd("Deep work @10:00 #focus", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft, err := q.Draft()
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if !task.IsProvisionalID(draft.ID) {
		t.Errorf("draft id = %q, want provisional", draft.ID)
	}
	if draft.Start.Hour() != 10 || draft.DurationMinutes != 60 {
		t.Errorf("draft schedule = %v/%d", draft.Start, draft.DurationMinutes)
	}
	if len(draft.TagNames) != 1 || draft.TagNames[0] != "focus" {
		t.Errorf("draft tags = %v", draft.TagNames)
	}
}
