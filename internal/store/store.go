// Package store owns the canonical in-memory task collection. Every
// mutation applies its local half synchronously, then writes through to the
// remote record service in the background: the UI always reflects local
// state, and a failed remote write leaves that state standing with only a
// diagnostic entry to show for it. Reconciliation is wholesale, via Load.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mulino/flowstate/internal/diag"
	"github.com/mulino/flowstate/internal/remote"
	"github.com/mulino/flowstate/internal/task"
)

// Store is the single source of truth for the current user's tasks.
type Store struct {
	mu       sync.Mutex
	tasks    []*task.Task
	client   remote.Client
	identity string
	log      *diag.Logger
	wg       sync.WaitGroup
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger for background write failures.
func WithLogger(l *diag.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithNow injects the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store for the given identity backed by the remote client.
func New(client remote.Client, identity string, opts ...Option) *Store {
	s := &Store{
		client:   client,
		identity: identity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// background dispatches the remote half of a mutation. The write is never
// awaited by the caller and never cancelled; Wait drains them for callers
// that need a clean exit.
func (s *Store) background(f func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		f()
	}()
}

// Wait blocks until all in-flight background writes have completed or
// failed. Interactive callers simply never call it.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Load fetches all tasks for the identity and replaces local state
// wholesale. Records that fail the mapping are skipped with a diagnostic
// rather than propagated. On fetch failure the last known-good snapshot is
// kept and the error returned.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.client.FetchAll(ctx, s.identity)
	if err != nil {
		s.log.LoadFailed(err)
		return fmt.Errorf("loading tasks: %w", err)
	}

	loaded := make([]*task.Task, 0, len(records))
	for _, rec := range records {
		t, err := remote.MapRecord(rec)
		if err != nil {
			s.log.Event("RECORD_SKIPPED", map[string]any{"error": err.Error()})
			continue
		}
		if t.IsTemplate {
			continue
		}
		loaded = append(loaded, t)
	}

	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()
	return nil
}

// Create validates the draft, appends it to local state immediately and
// issues the remote create in the background. On remote success a full
// reload swaps the provisional id for the durable one; on failure the task
// simply keeps its provisional id until the next Load.
func (s *Store) Create(ctx context.Context, draft *task.Task) (*task.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, task.ErrEmptyTitle
	}
	if draft.DurationMinutes <= 0 {
		return nil, task.ErrInvalidDuration
	}
	if draft.Start.IsZero() {
		return nil, task.ErrZeroStart
	}
	if !draft.Category.Valid() {
		return nil, task.ErrInvalidCategory
	}

	t := *draft
	if t.ID == "" {
		t.ID = task.NewProvisionalID()
	}
	if t.Color == "" {
		t.Color = t.Category.DefaultColor()
	}
	if t.Recurrence == "" {
		t.Recurrence = task.RecurrenceNone
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, &t)
	s.mu.Unlock()

	rec := remote.ToRecord(&t)
	id := t.ID
	s.background(func() {
		if _, err := s.client.Create(context.Background(), s.identity, rec); err != nil {
			s.log.WriteFailed("create", id, err)
			return
		}
		// Reload to pick up the durable id; patching it in place is
		// deliberately not attempted.
		_ = s.Load(context.Background())
	})

	return &t, nil
}

// Update merges the patch into the matching task immediately, then sends
// only the changed fields to the remote service. Applying the same patch
// twice leaves the task identical to applying it once.
func (s *Store) Update(ctx context.Context, id string, p Patch) error {
	if err := p.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	t, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	p.apply(t)
	fields := p.remoteFields(t)
	s.mu.Unlock()

	if len(fields) == 0 {
		return nil
	}
	s.background(func() {
		if err := s.client.Update(context.Background(), id, fields); err != nil {
			s.log.WriteFailed("update", id, err)
		}
	})
	return nil
}

// Move relocates a task to a new start time, optionally reassigning its
// category. Duration is preserved exactly: the end time shifts with the
// start.
func (s *Store) Move(ctx context.Context, id string, newStart time.Time, newCategory *task.Category) error {
	if newStart.IsZero() {
		return task.ErrZeroStart
	}
	if newCategory != nil && !newCategory.Valid() {
		return task.ErrInvalidCategory
	}
	p := Patch{Start: &newStart, Category: newCategory}
	return s.Update(ctx, id, p)
}

// Resize changes a task's duration, keeping its start time. Non-positive
// durations are rejected before any state changes.
func (s *Store) Resize(ctx context.Context, id string, newDuration int) error {
	if newDuration <= 0 {
		return task.ErrInvalidDuration
	}
	return s.Update(ctx, id, Patch{DurationMinutes: &newDuration})
}

// SetCompleted flips the completion flag.
func (s *Store) SetCompleted(ctx context.Context, id string, done bool) error {
	return s.Update(ctx, id, Patch{Completed: &done})
}

// Delete removes the task from local state immediately and issues the
// remote delete. A failed delete is logged, not rolled back.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return task.ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()

	// A provisional id was never persisted; there is nothing to delete
	// remotely.
	if task.IsProvisionalID(id) {
		return nil
	}
	s.background(func() {
		if err := s.client.Delete(context.Background(), id); err != nil {
			s.log.WriteFailed("delete", id, err)
		}
	})
	return nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (*task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.findLocked(id)
	if err != nil {
		return nil, false
	}
	return t, true
}

// Tasks returns the current collection in insertion order. The slice is a
// snapshot; the elements are live.
func (s *Store) Tasks() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ProjectForDayAndCategory returns, in insertion order, the tasks starting
// on the given local calendar day whose category equals the label or whose
// tag set contains it.
func (s *Store) ProjectForDayAndCategory(date time.Time, label string) []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*task.Task
	for _, t := range s.tasks {
		if t.OnDay(date) && t.MatchesLabel(label) {
			out = append(out, t)
		}
	}
	return out
}

// TasksForDay returns all tasks starting on the given local calendar day.
func (s *Store) TasksForDay(date time.Time) []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*task.Task
	for _, t := range s.tasks {
		if t.OnDay(date) {
			out = append(out, t)
		}
	}
	return out
}

// findLocked returns the task with the given id. Callers hold the mutex.
func (s *Store) findLocked(id string) (*task.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, task.ErrTaskNotFound
}
