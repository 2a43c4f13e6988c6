// Package drag implements the per-gesture drag session: a state machine
// that tracks what is being dragged (an existing task or a reusable
// template) and, on drop, resolves the target slot into a store mutation.
//
// The single active session is an explicit guarded slot rather than an
// assumption about the gesture source: starting a second drag while one is
// live is rejected, whatever delivers the pointer events.
package drag

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/mulino/flowstate/internal/task"
)

// Session errors.
var (
	ErrDragActive   = errors.New("a drag session is already active")
	ErrNoDrag       = errors.New("no drag session is active")
	ErrEmptyPayload = errors.New("drag payload must be a task or a template")
)

// Activation constraints: a gesture only becomes a drag after moving at
// least ActivationDistance pixels or being held for ActivationHold. A
// release before either threshold is a tap and mutates nothing.
const (
	ActivationDistance = 5.0
	ActivationHold     = 250 * time.Millisecond
)

// Point is a pointer position in grid pixels.
type Point struct {
	X, Y float64
}

func (p Point) distanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DropTarget is a calendar-cell surface resolved to a concrete slot. The
// target's snapped start time is authoritative over the pointer's raw
// position. Category is optional: a target without one leaves a moved
// task's category unchanged.
type DropTarget struct {
	Start       time.Time
	Category    task.Category
	HasCategory bool
}

// Mutator is the slice of the task store the controller drives.
type Mutator interface {
	Create(ctx context.Context, draft *task.Task) (*task.Task, error)
	Move(ctx context.Context, id string, newStart time.Time, newCategory *task.Category) error
}

// Session is one in-flight gesture. Exactly one of Task or Template is
// set. The session is destroyed unconditionally when the gesture ends,
// whatever the outcome.
type Session struct {
	PointerID int
	Task      *task.Task
	Template  *task.Template

	origin    Point
	current   Point
	startedAt time.Time
	activated bool
}

// Controller owns the single drag-session slot.
type Controller struct {
	store   Mutator
	session *Session
	now     func() time.Time
}

// NewController creates a controller driving the given store.
func NewController(store Mutator) *Controller {
	return &Controller{store: store, now: time.Now}
}

// SetNow injects the clock, for tests.
func (c *Controller) SetNow(now func() time.Time) {
	c.now = now
}

// StartTask begins a drag session for an existing task.
func (c *Controller) StartTask(pointerID int, t *task.Task, at Point) error {
	if t == nil {
		return ErrEmptyPayload
	}
	return c.start(&Session{PointerID: pointerID, Task: t, origin: at, current: at})
}

// StartTemplate begins a drag session for a template.
func (c *Controller) StartTemplate(pointerID int, tpl task.Template, at Point) error {
	return c.start(&Session{PointerID: pointerID, Template: &tpl, origin: at, current: at})
}

func (c *Controller) start(s *Session) error {
	if c.session != nil {
		return ErrDragActive
	}
	s.startedAt = c.now()
	c.session = s
	return nil
}

// PointerMove updates the pointer position. Once the distance threshold is
// crossed the gesture is recognized as a drag.
func (c *Controller) PointerMove(at Point) {
	if c.session == nil {
		return
	}
	c.session.current = at
	if !c.session.activated && at.distanceTo(c.session.origin) >= ActivationDistance {
		c.session.activated = true
	}
}

// Dragging returns true while a session is live.
func (c *Controller) Dragging() bool {
	return c.session != nil
}

// Activated returns true once the gesture has qualified as a drag by
// distance or hold time.
func (c *Controller) Activated() bool {
	s := c.session
	if s == nil {
		return false
	}
	if s.activated {
		return true
	}
	return c.now().Sub(s.startedAt) >= ActivationHold
}

// Ghost returns the dragged entity for overlay rendering: the task or a
// task stamped from the template at its preset duration. Returns nil when
// no session is live.
func (c *Controller) Ghost() *task.Task {
	s := c.session
	switch {
	case s == nil:
		return nil
	case s.Task != nil:
		return s.Task
	default:
		return &task.Task{
			Title:           s.Template.Title,
			DurationMinutes: s.Template.DurationMinutes,
			Category:        s.Template.Category,
			Color:           s.Template.Color,
			IsTemplate:      true,
		}
	}
}

// Drop ends the session against a resolved target. A nil target, or a
// gesture that never activated, is a cancellation: the session is
// discarded and nothing mutates. Otherwise the template variant creates a
// new task from the drop slot and the task variant moves the existing one
// there. The session is cleared on every path, including store errors.
func (c *Controller) Drop(ctx context.Context, target *DropTarget) error {
	s := c.session
	if s == nil {
		return ErrNoDrag
	}
	defer func() { c.session = nil }()

	if target == nil || !c.Activated() {
		return nil
	}

	switch {
	case s.Template != nil:
		draft := s.Template.Instantiate(target.Start)
		if target.HasCategory {
			draft.Category = target.Category
		}
		_, err := c.store.Create(ctx, draft)
		return err
	case s.Task != nil:
		var cat *task.Category
		if target.HasCategory {
			cat = &target.Category
		}
		return c.store.Move(ctx, s.Task.ID, target.Start, cat)
	default:
		return ErrEmptyPayload
	}
}

// Cancel discards the session without mutating anything. Safe to call when
// no session is live.
func (c *Controller) Cancel() {
	c.session = nil
}
