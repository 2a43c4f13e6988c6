// Package diag provides a JSON-lines diagnostic log for background
// operations. Failed remote writes are recorded here and nowhere else: the
// store never rolls back or retries, so the log is the only trace that
// local and remote state may have diverged.
package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger writes structured events to a sink. The zero value and a nil
// Logger are both safe no-ops, so callers never guard their log calls.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
}

// New creates a logger writing to w. A nil writer yields a no-op logger.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Event writes one structured entry.
func (l *Logger) Event(event string, data map[string]any) {
	if l == nil || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    time.Now().Format(time.RFC3339),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// WriteFailed records a failed background write for a task.
func (l *Logger) WriteFailed(op, taskID string, err error) {
	l.Event("WRITE_FAILED", map[string]any{
		"op":      op,
		"task_id": taskID,
		"error":   err.Error(),
	})
}

// LoadFailed records a failed full reload.
func (l *Logger) LoadFailed(err error) {
	l.Event("LOAD_FAILED", map[string]any{
		"error": err.Error(),
	})
}
