package task

import (
	"errors"
	"strings"
)

// Tag validation errors.
var (
	ErrEmptyTagName = errors.New("tag name cannot be empty")
)

// Tag is a user-defined label, independent of category. Tags are
// open-ended and many-to-many with tasks via Task.TagNames.
type Tag struct {
	Name        string
	Description string
	Color       string // display only, not persisted remotely
}

// NewTag creates a Tag with a normalized, validated name.
func NewTag(name, description string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTagName
	}
	return &Tag{Name: name, Description: description}, nil
}
