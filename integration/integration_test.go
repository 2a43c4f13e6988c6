package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mulino/flowstate/internal/db"
	"github.com/mulino/flowstate/internal/store"
	"github.com/mulino/flowstate/internal/tags"
	"github.com/mulino/flowstate/internal/task"
)

const identity = "test@mulino.com"

// openBackend creates a fresh SQLite backend for each test with automatic
// cleanup.
func openBackend(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	backend, err := db.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open backend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

// newStore builds a loaded store over the backend.
func newStore(t *testing.T, backend *db.SQLite) *store.Store {
	t.Helper()
	st := store.New(backend, identity)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return st
}

func mustCreate(t *testing.T, st *store.Store, title string, start time.Time, minutes int, category task.Category) *task.Task {
	t.Helper()
	draft, err := task.New(title, start, minutes, category)
	if err != nil {
		t.Fatalf("failed to build draft: %v", err)
	}
	created, err := st.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return created
}

func TestCreatePersistsAndReconciles(t *testing.T) {
	backend := openBackend(t)
	st := newStore(t, backend)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	created := mustCreate(t, st, "Write report", start, 60, task.CategoryWork)

	if !task.IsProvisionalID(created.ID) {
		t.Errorf("fresh task id = %q, want provisional", created.ID)
	}

	// After the background write lands the provisional id is replaced by
	// the durable one from the backend.
	st.Wait()
	tasks := st.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if task.IsProvisionalID(tasks[0].ID) {
		t.Errorf("id %q still provisional after flush", tasks[0].ID)
	}
	if tasks[0].Title != "Write report" || !tasks[0].Start.Equal(start) {
		t.Errorf("task = %+v", tasks[0])
	}
}

func TestLifecycleSurvivesReload(t *testing.T) {
	backend := openBackend(t)
	st := newStore(t, backend)
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	mustCreate(t, st, "Deep work", start, 60, task.CategoryWork)
	st.Wait()

	id := st.Tasks()[0].ID
	newStart := time.Date(2025, 3, 11, 14, 0, 0, 0, time.Local)
	school := task.CategorySchool
	if err := st.Move(ctx, id, newStart, &school); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := st.Resize(ctx, id, 90); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if err := st.SetCompleted(ctx, id, true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	st.Wait()

	// A second store over the same database sees the mutated task.
	fresh := newStore(t, backend)
	got, ok := fresh.Get(id)
	if !ok {
		t.Fatalf("task %s not found after reload", id)
	}
	if !got.Start.Equal(newStart) {
		t.Errorf("start = %v, want %v", got.Start, newStart)
	}
	if got.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90", got.DurationMinutes)
	}
	if got.Category != task.CategorySchool {
		t.Errorf("category = %s, want school", got.Category)
	}
	if !got.Completed {
		t.Error("expected completed after reload")
	}
}

func TestDeleteRemovesEverywhere(t *testing.T) {
	backend := openBackend(t)
	st := newStore(t, backend)
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	mustCreate(t, st, "Short lived", start, 30, task.CategoryHobbies)
	st.Wait()

	id := st.Tasks()[0].ID
	if err := st.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	st.Wait()

	if _, ok := st.Get(id); ok {
		t.Error("task still in local state")
	}
	records, err := backend.FetchAll(ctx, identity)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("backend holds %d records, want 0", len(records))
	}

	if err := st.Delete(ctx, id); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("second delete error = %v, want ErrTaskNotFound", err)
	}
}

func TestTagCascadeAgainstBackend(t *testing.T) {
	backend := openBackend(t)
	st := newStore(t, backend)
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tagged, err := task.New("Tagged", start, 60, task.CategoryWork)
	if err != nil {
		t.Fatalf("draft failed: %v", err)
	}
	tagged.TagNames = []string{"urgent"}
	if _, err := st.Create(ctx, tagged); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	mustCreate(t, st, "Plain", start.Add(2*time.Hour), 60, task.CategoryWork)
	st.Wait()

	mgr := tags.NewManager(backend, st, identity)
	if _, err := mgr.Create(ctx, "urgent", "needs attention"); err != nil {
		t.Fatalf("tag create failed: %v", err)
	}

	deleted, err := mgr.DeleteCascade(ctx, "urgent")
	if err != nil {
		t.Fatalf("DeleteCascade failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	st.Wait()

	records, err := backend.FetchAll(ctx, identity)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Plain" {
		t.Errorf("records = %v, want only Plain", records)
	}

	tagRecords, err := backend.FetchTags(ctx, identity)
	if err != nil {
		t.Fatalf("FetchTags failed: %v", err)
	}
	if len(tagRecords) != 0 {
		t.Errorf("tags = %v, want none", tagRecords)
	}
}
