// Package tags manages the user's tag collection and applies the cascade
// policy for tag deletion: the tag collaborator itself never touches
// tasks, so removing every task bearing the tag is done here with per-task
// store deletes.
package tags

import (
	"context"
	"fmt"

	"github.com/mulino/flowstate/internal/remote"
	"github.com/mulino/flowstate/internal/store"
	"github.com/mulino/flowstate/internal/task"
)

// Manager wraps the tag collaborator for one identity.
type Manager struct {
	client   remote.TagClient
	store    *store.Store
	identity string
}

// NewManager creates a manager for the identity.
func NewManager(client remote.TagClient, st *store.Store, identity string) *Manager {
	return &Manager{client: client, store: st, identity: identity}
}

// List returns all tags for the identity.
func (m *Manager) List(ctx context.Context) ([]task.Tag, error) {
	records, err := m.client.FetchTags(ctx, m.identity)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	out := make([]task.Tag, 0, len(records))
	for _, r := range records {
		out = append(out, task.Tag{Name: r.TagName, Description: r.Description})
	}
	return out, nil
}

// Create adds a new tag.
func (m *Manager) Create(ctx context.Context, name, description string) (*task.Tag, error) {
	tag, err := task.NewTag(name, description)
	if err != nil {
		return nil, err
	}
	if _, err := m.client.CreateTag(ctx, m.identity, tag.Name, tag.Description); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateDescription replaces a tag's description.
func (m *Manager) UpdateDescription(ctx context.Context, name, description string) error {
	return m.client.UpdateTagDescription(ctx, m.identity, name, description)
}

// Delete removes the tag only; tasks bearing it keep the stale name until
// edited.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.client.DeleteTag(ctx, m.identity, name)
}

// DeleteCascade removes the tag and every task bearing it, one store
// delete per task. Returns the number of tasks deleted. Individual task
// deletes are optimistic like any other store mutation; a remote failure
// among them does not abort the cascade.
func (m *Manager) DeleteCascade(ctx context.Context, name string) (int, error) {
	if err := m.client.DeleteTag(ctx, m.identity, name); err != nil {
		return 0, err
	}

	deleted := 0
	for _, t := range m.store.Tasks() {
		if t.HasTag(name) {
			if err := m.store.Delete(ctx, t.ID); err != nil {
				continue
			}
			deleted++
		}
	}
	return deleted, nil
}
