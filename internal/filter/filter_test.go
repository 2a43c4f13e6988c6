package filter

import (
	"testing"
	"time"

	"github.com/mulino/flowstate/internal/task"
)

func sample() []*task.Task {
	return []*task.Task{
		{ID: "a", Category: task.CategoryWork},
		{ID: "b", Category: task.CategorySchool},
		{ID: "c", Category: task.CategoryHobbies, TagNames: []string{"work"}},
	}
}

func ids(tasks []*task.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "all", filter: All, want: []string{"a", "b", "c"}},
		{name: "empty behaves as all", filter: "", want: []string{"a", "b", "c"}},
		{name: "category union with tags", filter: "work", want: []string{"a", "c"}},
		{name: "category only", filter: "school", want: []string{"b"}},
		{name: "no match", filter: "reading", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(sample()))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Apply() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestForDay(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	tasks := []*task.Task{
		{ID: "a", Start: monday.Add(9 * time.Hour)},
		{ID: "b", Start: monday.AddDate(0, 0, 1).Add(9 * time.Hour)},
		{ID: "c", Start: monday.Add(22 * time.Hour)},
	}

	got := ids(ForDay(tasks, monday))
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("ForDay() = %v, want [a c]", got)
	}
}

func TestNextCycles(t *testing.T) {
	f := Filter(All)
	seen := map[Filter]bool{}
	for i := 0; i < len(task.Categories())+1; i++ {
		f = f.Next()
		seen[f] = true
	}
	if f != All {
		t.Errorf("cycle did not return to All, ended at %q", f)
	}
	for _, c := range task.Categories() {
		if !seen[Filter(c)] {
			t.Errorf("cycle never visited %q", c)
		}
	}
}
