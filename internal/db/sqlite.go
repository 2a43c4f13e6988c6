// Package db provides a SQLite-backed task record service for offline use.
// It implements the same client interfaces as the HTTP backend, so the
// store does not know whether it is writing to a server or a local file.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mulino/flowstate/internal/remote"
)

// SQLite implements remote.Client and remote.TagClient using SQLite.
type SQLite struct {
	db *sql.DB
}

// New opens a SQLite database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Writes arrive from concurrent goroutines. A single connection
	// serializes them; a second writer would get SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// FetchAll returns every task record belonging to the identity, ordered
// by start time.
func (s *SQLite) FetchAll(ctx context.Context, identity string) ([]remote.Record, error) {
	query := `
		SELECT id, title, description, category, start_time, end_time,
		       duration, tag_names, is_completed, is_template, color, recurrence
		FROM tasks
		WHERE email = ?
		ORDER BY start_time
	`

	rows, err := s.db.QueryContext(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []remote.Record
	for rows.Next() {
		var (
			rec      remote.Record
			tagNames string
		)

		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.Description,
			&rec.Category,
			&rec.StartTime,
			&rec.EndTime,
			&rec.Duration,
			&tagNames,
			&rec.IsCompleted,
			&rec.IsTemplate,
			&rec.Color,
			&rec.Recurrence,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		rec.TagNames, err = decodeTags(tagNames)
		if err != nil {
			return nil, fmt.Errorf("decoding tags for %s: %w", rec.ID, err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return records, nil
}

// Create inserts a new task record and returns it with a durable id.
func (s *SQLite) Create(ctx context.Context, identity string, rec remote.Record) (remote.Record, error) {
	rec.ID = uuid.NewString()

	tagNames, err := encodeTags(rec.TagNames)
	if err != nil {
		return remote.Record{}, fmt.Errorf("encoding tags: %w", err)
	}

	query := `
		INSERT INTO tasks (
			id, email, title, description, category, start_time, end_time,
			duration, tag_names, is_completed, is_template, color, recurrence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		identity,
		rec.Title,
		rec.Description,
		rec.Category,
		rec.StartTime,
		rec.EndTime,
		rec.Duration,
		tagNames,
		rec.IsCompleted,
		rec.IsTemplate,
		rec.Color,
		rec.Recurrence,
	)
	if err != nil {
		return remote.Record{}, fmt.Errorf("inserting task: %w", err)
	}

	return rec, nil
}

// taskColumns maps updatable wire field names to their columns. Field
// names outside this set are rejected rather than silently dropped.
var taskColumns = map[string]string{
	"title":        "title",
	"description":  "description",
	"category":     "category",
	"start_time":   "start_time",
	"end_time":     "end_time",
	"duration":     "duration",
	"tag_names":    "tag_names",
	"is_completed": "is_completed",
	"is_template":  "is_template",
	"color":        "color",
	"recurrence":   "recurrence",
}

// Update applies a partial field map to an existing task record.
func (s *SQLite) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		clauses []string
		args    []any
	)
	for _, name := range names {
		column, ok := taskColumns[name]
		if !ok {
			return fmt.Errorf("unknown task field %q", name)
		}

		value := fields[name]
		if name == "tag_names" {
			tags, ok := value.([]string)
			if !ok {
				return fmt.Errorf("tag_names must be a string slice, got %T", value)
			}
			encoded, err := encodeTags(tags)
			if err != nil {
				return fmt.Errorf("encoding tags: %w", err)
			}
			value = encoded
		}

		clauses = append(clauses, column+" = ?")
		args = append(args, value)
	}
	args = append(args, id)

	query := "UPDATE tasks SET " + strings.Join(clauses, ", ") + " WHERE id = ?"

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return remote.ErrNotFound
	}

	return nil
}

// Delete removes a task record.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return remote.ErrNotFound
	}

	return nil
}

// FetchTags returns every tag belonging to the identity.
func (s *SQLite) FetchTags(ctx context.Context, identity string) ([]remote.TagRecord, error) {
	query := `SELECT tag_name, description FROM tags WHERE email = ? ORDER BY tag_name`

	rows, err := s.db.QueryContext(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []remote.TagRecord
	for rows.Next() {
		rec := remote.TagRecord{Email: identity}
		if err := rows.Scan(&rec.TagName, &rec.Description); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// CreateTag inserts a new tag for the identity.
func (s *SQLite) CreateTag(ctx context.Context, identity, name, description string) (remote.TagRecord, error) {
	query := `INSERT INTO tags (email, tag_name, description) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, identity, name, description); err != nil {
		return remote.TagRecord{}, fmt.Errorf("inserting tag: %w", err)
	}

	return remote.TagRecord{Email: identity, TagName: name, Description: description}, nil
}

// UpdateTagDescription replaces a tag's description.
func (s *SQLite) UpdateTagDescription(ctx context.Context, identity, name, description string) error {
	query := `UPDATE tags SET description = ? WHERE email = ? AND tag_name = ?`

	result, err := s.db.ExecContext(ctx, query, description, identity, name)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return remote.ErrNotFound
	}

	return nil
}

// DeleteTag removes a tag. Tasks carrying the tag are untouched; cascade
// policy lives with the caller.
func (s *SQLite) DeleteTag(ctx context.Context, identity, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE email = ? AND tag_name = ?`, identity, name)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return remote.ErrNotFound
	}

	return nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTags(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
