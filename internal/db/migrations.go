package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			email        TEXT NOT NULL,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			category     TEXT NOT NULL DEFAULT '',
			start_time   TEXT NOT NULL,
			end_time     TEXT NOT NULL DEFAULT '',
			duration     INTEGER NOT NULL DEFAULT 0,
			tag_names    TEXT NOT NULL DEFAULT '[]',
			is_completed INTEGER NOT NULL DEFAULT 0,
			is_template  INTEGER NOT NULL DEFAULT 0,
			color        TEXT NOT NULL DEFAULT '',
			recurrence   TEXT NOT NULL DEFAULT '',
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_email ON tasks(email);
		CREATE INDEX IF NOT EXISTS idx_tasks_start ON tasks(start_time);

		CREATE TABLE IF NOT EXISTS tags (
			email       TEXT NOT NULL,
			tag_name    TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (email, tag_name)
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
