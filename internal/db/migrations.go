package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id         TEXT PRIMARY KEY,
			label      TEXT NOT NULL CHECK(label IN ('personal', 'academic')),
			title      TEXT NOT NULL,
			start_at   TEXT NOT NULL,
			deadline   TEXT NOT NULL,
			weight     REAL NOT NULL DEFAULT 1 CHECK(weight >= 0),
			status     TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'completed', 'missed')),
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline);
		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
