package remote

import (
	"context"
	"errors"
)

// Service errors.
var (
	ErrNotFound = errors.New("record not found")
)

// Client is the task-record service the store writes through. Identity is
// always an explicit parameter; nothing here holds an ambient current user.
type Client interface {
	// FetchAll returns every task record belonging to the identity.
	FetchAll(ctx context.Context, identity string) ([]Record, error)

	// Create persists a new record and returns it with its durable id.
	Create(ctx context.Context, identity string, rec Record) (Record, error)

	// Update applies a partial field map, keyed by remote field names
	// (start_time, end_time, tag_names, is_completed, color, ...).
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes the record. Deleting an unknown id returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// TagClient is the tag collaborator. Tag deletion does not cascade here;
// the caller owns that policy and loops per-task deletes itself.
type TagClient interface {
	FetchTags(ctx context.Context, identity string) ([]TagRecord, error)
	CreateTag(ctx context.Context, identity, name, description string) (TagRecord, error)
	UpdateTagDescription(ctx context.Context, identity, name, description string) error
	DeleteTag(ctx context.Context, identity, name string) error
}
